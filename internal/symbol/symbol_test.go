package symbol_test

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"

	"tagpress/internal/symbol"
)

const testToken = "1-24-2024-D0-0000001"

func TestEncodeIsDeterministic(t *testing.T) {
	opts := symbol.Options{Level: "medium", SizePx: 256}
	first, err := symbol.Encode(testToken, opts)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second, err := symbol.Encode(testToken, opts)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Fatal("expected byte-identical PNG output for identical inputs")
	}
}

func TestEncodeProducesSizedPNG(t *testing.T) {
	sym, err := symbol.Encode(testToken, symbol.Options{Level: "high", SizePx: 128})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(sym.PNG))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 128 || bounds.Dy() != 128 {
		t.Fatalf("unexpected image size: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	sym, err := symbol.Encode(testToken, symbol.Options{Level: "medium", SizePx: 256})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(sym.PNG))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("build bitmap: %v", err)
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("decode QR: %v", err)
	}
	if result.GetText() != testToken {
		t.Fatalf("round trip mismatch: got %q want %q", result.GetText(), testToken)
	}
}

func TestEncodeRejectsOversizedContent(t *testing.T) {
	huge := strings.Repeat("A", 5000)
	_, err := symbol.Encode(huge, symbol.Options{Level: "highest", SizePx: 256})
	if !errors.Is(err, symbol.ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
}

func TestEncodeValidatesOptions(t *testing.T) {
	if _, err := symbol.Encode(testToken, symbol.Options{Level: "extreme", SizePx: 256}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := symbol.Encode(testToken, symbol.Options{Level: "low", SizePx: 0}); err == nil {
		t.Fatal("expected error for non-positive size")
	}
	if _, err := symbol.Encode("", symbol.Options{Level: "low", SizePx: 64}); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestDataURIPrefix(t *testing.T) {
	sym, err := symbol.Encode(testToken, symbol.Options{Level: "low", SizePx: 64})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(sym.DataURI(), "data:image/png;base64,") {
		t.Fatalf("unexpected data URI prefix: %s", sym.DataURI()[:40])
	}
}
