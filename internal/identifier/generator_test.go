package identifier_test

import (
	"errors"
	"testing"

	"tagpress/internal/identifier"
)

func components(width int) identifier.Components {
	return identifier.Components{
		Area:         1,
		ProducerCode: "24",
		Year:         2024,
		ModelCode:    "D0",
		SerialWidth:  width,
	}
}

func TestTokenLayout(t *testing.T) {
	token := identifier.Token(components(7), 42)
	if token != "1-24-2024-D0-0000042" {
		t.Fatalf("unexpected token: %q", token)
	}

	token = identifier.Token(components(2), 5)
	if token != "1-24-2024-D0-05" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestNextIsDeterministic(t *testing.T) {
	known := map[string]struct{}{}
	first, err := identifier.Next(components(7), known, 0)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	second, err := identifier.Next(components(7), known, 0)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if first != second {
		t.Fatalf("identical inputs produced different records: %+v vs %+v", first, second)
	}
	if first.Serial != 1 {
		t.Fatalf("expected serial 1, got %d", first.Serial)
	}
}

func TestNextResumesAfterLastSerial(t *testing.T) {
	rec, err := identifier.Next(components(7), map[string]struct{}{}, 5)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if rec.Serial != 6 {
		t.Fatalf("expected serial 6, got %d", rec.Serial)
	}
	if rec.Token != "1-24-2024-D0-0000006" {
		t.Fatalf("unexpected token: %q", rec.Token)
	}
}

func TestNextSkipsCollisions(t *testing.T) {
	c := components(2)
	known := map[string]struct{}{
		identifier.Token(c, 1): {},
		identifier.Token(c, 2): {},
	}
	// Simulates reset bookkeeping: lastSerial says 0 but tokens 01 and 02
	// are already issued.
	rec, err := identifier.Next(c, known, 0)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if rec.Serial != 3 {
		t.Fatalf("expected serial 3 after skipping collisions, got %d", rec.Serial)
	}
}

func TestNextExhaustsSequence(t *testing.T) {
	c := components(1)
	known := map[string]struct{}{}
	if _, err := identifier.Next(c, known, 9); !errors.Is(err, identifier.ErrSequenceExhausted) {
		t.Fatalf("expected ErrSequenceExhausted, got %v", err)
	}

	for serial := 1; serial <= 9; serial++ {
		known[identifier.Token(c, serial)] = struct{}{}
	}
	if _, err := identifier.Next(c, known, 0); !errors.Is(err, identifier.ErrSequenceExhausted) {
		t.Fatalf("expected ErrSequenceExhausted when all tokens are known, got %v", err)
	}
}

func TestParseSerial(t *testing.T) {
	c := components(7)
	serial, ok := identifier.ParseSerial("1-24-2024-D0-0000042", c)
	if !ok || serial != 42 {
		t.Fatalf("expected serial 42, got %d ok=%v", serial, ok)
	}

	for _, token := range []string{
		"",
		"1-24-2024-D0",
		"2-24-2024-D0-0000042",
		"1-24-2024-D0-42",
		"1-24-2024-D0-00000xx",
		"1-24-2024-G1-0000042",
	} {
		if _, ok := identifier.ParseSerial(token, c); ok {
			t.Fatalf("expected token %q to be rejected", token)
		}
	}
}

func TestFormatRenderRejectsOverflow(t *testing.T) {
	format := identifier.Layout(components(2))
	_, err := format.Render([]string{"1", "24", "2024", "D0", "100"})
	if err == nil {
		t.Fatal("expected width overflow error")
	}
}
