package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"tagpress/internal/identifier"
	"tagpress/internal/symbol"
)

// Geometry describes the fixed cell grid of one page. All lengths are in the
// page's own units (points for the default A4 template).
type Geometry struct {
	Rows       int
	Columns    int
	CellWidth  float64
	CellHeight float64
	MarginX    float64
	MarginY    float64
	PageWidth  float64
	PageHeight float64
}

// Capacity returns the number of cells per page.
func (g Geometry) Capacity() int {
	return g.Rows * g.Columns
}

// Cell is one placed label: its grid slot, absolute position, and content.
type Cell struct {
	Row, Column int
	X, Y        float64
	Record      identifier.Record
	Symbol      *symbol.Symbol
}

// PageWriter opens the output for one finalized page, keyed by its file name.
type PageWriter func(name string) (io.WriteCloser, error)

// Assembler tiles (record, symbol) pairs into paginated SVG documents. Cells
// fill left to right, top to bottom; a page is serialized the moment it is
// full, and Close serializes a trailing partial page. Placing nothing produces
// no pages.
type Assembler struct {
	geo     Geometry
	newPage PageWriter
	cells   []Cell
	pages   int
	closed  bool
}

// NewAssembler validates the geometry and returns an assembler writing pages
// through pageWriter.
func NewAssembler(geo Geometry, pageWriter PageWriter) (*Assembler, error) {
	if geo.Rows <= 0 || geo.Columns <= 0 {
		return nil, fmt.Errorf("grid must be positive, got %dx%d", geo.Rows, geo.Columns)
	}
	if geo.CellWidth <= 0 || geo.CellHeight <= 0 || geo.PageWidth <= 0 || geo.PageHeight <= 0 {
		return nil, errors.New("page and cell dimensions must be positive")
	}
	if pageWriter == nil {
		return nil, errors.New("page writer is required")
	}
	return &Assembler{geo: geo, newPage: pageWriter}, nil
}

// Place adds one label to the current page, finalizing it when full.
func (a *Assembler) Place(rec identifier.Record, sym *symbol.Symbol) error {
	if a.closed {
		return errors.New("assembler is closed")
	}
	if sym == nil {
		return errors.New("symbol is required")
	}

	index := len(a.cells)
	row := index / a.geo.Columns
	col := index % a.geo.Columns
	a.cells = append(a.cells, Cell{
		Row:    row,
		Column: col,
		X:      a.geo.MarginX + float64(col)*a.geo.CellWidth,
		Y:      a.geo.MarginY + float64(row)*a.geo.CellHeight,
		Record: rec,
		Symbol: sym,
	})

	if len(a.cells) == a.geo.Capacity() {
		return a.finalize()
	}
	return nil
}

// Close finalizes a partially filled page, if any. A short final page is
// valid and expected.
func (a *Assembler) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if len(a.cells) == 0 {
		return nil
	}
	return a.finalize()
}

// Pages returns the number of pages serialized so far.
func (a *Assembler) Pages() int { return a.pages }

// PageName builds the output file name for a page spanning the given tokens.
func PageName(first, last string) string {
	return fmt.Sprintf("labels_%s_%s.svg", first, last)
}

func (a *Assembler) finalize() error {
	first := a.cells[0].Record.Token
	last := a.cells[len(a.cells)-1].Record.Token

	out, err := a.newPage(PageName(first, last))
	if err != nil {
		return fmt.Errorf("open page output: %w", err)
	}

	renderPage(out, a.geo, a.cells)

	if err := out.Close(); err != nil {
		return fmt.Errorf("close page output: %w", err)
	}
	a.pages++
	a.cells = a.cells[:0]
	return nil
}

const (
	cellOutlineStyle = "fill:none;stroke:black;stroke-width:0.5"
	labelTextStyle   = "font-family:Arial Narrow;font-weight:bold;font-size:7px;fill:black"
	cellPadding      = 2.0
	labelLineHeight  = 8.0
)

func renderPage(w io.Writer, geo Geometry, cells []Cell) {
	canvas := svg.New(w)
	canvas.Start(geo.PageWidth, geo.PageHeight)

	for _, cell := range cells {
		canvas.Group()
		canvas.Roundrect(cell.X, cell.Y, geo.CellWidth, geo.CellHeight, 3, 3, cellOutlineStyle)

		qrSize := geo.CellHeight - 2*cellPadding
		if qrSize > geo.CellWidth/2 {
			qrSize = geo.CellWidth / 2
		}
		qrX := cell.X + cellPadding
		qrY := cell.Y + cellPadding
		// svgo's float canvas still takes integer image dimensions.
		canvas.Image(qrX, qrY, int(qrSize), int(qrSize), cell.Symbol.DataURI())

		textX := qrX + qrSize + cellPadding
		textY := cell.Y + geo.CellHeight/2 - labelLineHeight/2
		prefix, serial := splitLabel(cell.Record.Token)
		canvas.Text(textX, textY, prefix, labelTextStyle)
		canvas.Text(textX, textY+labelLineHeight, serial, labelTextStyle)
		canvas.Gend()
	}

	canvas.End()
}

// splitLabel breaks a token into the structural prefix and the serial so the
// label fits on two lines inside the cell.
func splitLabel(token string) (string, string) {
	idx := strings.LastIndex(token, identifier.Separator)
	if idx < 0 {
		return token, ""
	}
	return token[:idx+1], token[idx+1:]
}
