package sheet_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"tagpress/internal/identifier"
	"tagpress/internal/sheet"
	"tagpress/internal/symbol"
)

func testGeometry(rows, cols int) sheet.Geometry {
	return sheet.Geometry{
		Rows:       rows,
		Columns:    cols,
		CellWidth:  93.1,
		CellHeight: 42,
		MarginX:    21.3,
		MarginY:    43.4,
		PageWidth:  595.3,
		PageHeight: 841.9,
	}
}

type capturedPage struct {
	name string
	buf  *bytes.Buffer
}

type pageCapture struct {
	pages []*capturedPage
}

func (c *pageCapture) writer(name string) (io.WriteCloser, error) {
	page := &capturedPage{name: name, buf: &bytes.Buffer{}}
	c.pages = append(c.pages, page)
	return nopCloser{page.buf}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func testRecord(t *testing.T, serial int) (identifier.Record, *symbol.Symbol) {
	t.Helper()
	c := identifier.Components{Area: 1, ProducerCode: "24", Year: 2024, ModelCode: "D0", SerialWidth: 2}
	rec := identifier.Record{Components: c, Serial: serial, Token: identifier.Token(c, serial)}
	sym, err := symbol.Encode(rec.Token, symbol.Options{Level: "medium", SizePx: 64})
	if err != nil {
		t.Fatalf("encode symbol: %v", err)
	}
	return rec, sym
}

func place(t *testing.T, a *sheet.Assembler, count int) {
	t.Helper()
	for serial := 1; serial <= count; serial++ {
		rec, sym := testRecord(t, serial)
		if err := a.Place(rec, sym); err != nil {
			t.Fatalf("Place %d failed: %v", serial, err)
		}
	}
}

func TestZeroPlacementsProduceZeroPages(t *testing.T) {
	capture := &pageCapture{}
	a, err := sheet.NewAssembler(testGeometry(2, 2), capture.writer)
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if a.Pages() != 0 || len(capture.pages) != 0 {
		t.Fatalf("expected zero pages, got %d", a.Pages())
	}
}

func TestPageCountMatchesCeilOfCapacity(t *testing.T) {
	cases := []struct {
		count, rows, cols, wantPages int
	}{
		{1, 2, 2, 1},
		{4, 2, 2, 1},
		{5, 2, 2, 2},
		{8, 2, 2, 2},
		{9, 2, 2, 3},
		{7, 3, 1, 3},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_in_%dx%d", tc.count, tc.rows, tc.cols), func(t *testing.T) {
			capture := &pageCapture{}
			a, err := sheet.NewAssembler(testGeometry(tc.rows, tc.cols), capture.writer)
			if err != nil {
				t.Fatalf("NewAssembler failed: %v", err)
			}
			place(t, a, tc.count)
			if err := a.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if a.Pages() != tc.wantPages {
				t.Fatalf("expected %d pages, got %d", tc.wantPages, a.Pages())
			}
		})
	}
}

func TestFullPageFinalizedImmediately(t *testing.T) {
	capture := &pageCapture{}
	a, err := sheet.NewAssembler(testGeometry(2, 2), capture.writer)
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}
	place(t, a, 4)
	// Page is full: it must already be written before Close.
	if a.Pages() != 1 {
		t.Fatalf("expected full page to finalize immediately, pages=%d", a.Pages())
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if a.Pages() != 1 {
		t.Fatalf("expected no extra page from Close, pages=%d", a.Pages())
	}
}

func TestRowMajorPlacementAndContent(t *testing.T) {
	capture := &pageCapture{}
	geo := testGeometry(2, 2)
	a, err := sheet.NewAssembler(geo, capture.writer)
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}
	place(t, a, 4)
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if len(capture.pages) != 1 {
		t.Fatalf("expected one page, got %d", len(capture.pages))
	}
	doc := capture.pages[0].buf.String()

	// Row-major order: tokens appear in issue order in the serialized page.
	lastIdx := -1
	for serial := 1; serial <= 4; serial++ {
		serialText := fmt.Sprintf("%02d", serial)
		idx := strings.Index(doc, ">"+serialText+"<")
		if idx < 0 {
			t.Fatalf("expected serial %s in page output", serialText)
		}
		if idx <= lastIdx {
			t.Fatalf("serial %s appears out of row-major order", serialText)
		}
		lastIdx = idx
	}

	if !strings.Contains(doc, "data:image/png;base64,") {
		t.Fatal("expected embedded PNG data URI in page output")
	}
	if !strings.Contains(doc, "1-24-2024-D0-") {
		t.Fatal("expected structural prefix text in page output")
	}
	if strings.Count(doc, "data:image/png;base64,") != 4 {
		t.Fatal("expected one embedded image per cell")
	}
}

func TestSymbolFillsCellHeight(t *testing.T) {
	capture := &pageCapture{}
	geo := testGeometry(2, 2)
	a, err := sheet.NewAssembler(geo, capture.writer)
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}
	place(t, a, 1)
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	doc := capture.pages[0].buf.String()
	if !strings.Contains(doc, "<image") {
		t.Fatal("expected an image element in page output")
	}
	// The symbol squares off against the padded cell height: 42 - 2*2 = 38.
	if !strings.Contains(doc, `width="38"`) || !strings.Contains(doc, `height="38"`) {
		t.Fatalf("expected a 38x38 symbol image, got:\n%s", doc)
	}
}

func TestPageNames(t *testing.T) {
	capture := &pageCapture{}
	a, err := sheet.NewAssembler(testGeometry(2, 2), capture.writer)
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}
	place(t, a, 5)
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if len(capture.pages) != 2 {
		t.Fatalf("expected two pages, got %d", len(capture.pages))
	}
	if capture.pages[0].name != "labels_1-24-2024-D0-01_1-24-2024-D0-04.svg" {
		t.Fatalf("unexpected first page name: %s", capture.pages[0].name)
	}
	if capture.pages[1].name != "labels_1-24-2024-D0-05_1-24-2024-D0-05.svg" {
		t.Fatalf("unexpected second page name: %s", capture.pages[1].name)
	}
}

func TestRenderingIsDeterministic(t *testing.T) {
	render := func() string {
		capture := &pageCapture{}
		a, err := sheet.NewAssembler(testGeometry(2, 2), capture.writer)
		if err != nil {
			t.Fatalf("NewAssembler failed: %v", err)
		}
		place(t, a, 3)
		if err := a.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		return capture.pages[0].buf.String()
	}
	if render() != render() {
		t.Fatal("expected identical page output across identical runs")
	}
}

func TestPlaceAfterCloseFails(t *testing.T) {
	capture := &pageCapture{}
	a, err := sheet.NewAssembler(testGeometry(2, 2), capture.writer)
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	rec, sym := testRecord(t, 1)
	if err := a.Place(rec, sym); err == nil {
		t.Fatal("expected Place after Close to fail")
	}
}
