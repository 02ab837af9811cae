package identifier

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins token fields. It never appears inside a field value.
const Separator = "-"

// FieldSpec describes one segment of the token layout: its name and the fixed
// width it is zero-padded to. Width 0 means the value is used as supplied.
type FieldSpec struct {
	Name  string
	Width int
}

// Format is a declarative token layout. The generator renders tokens through
// it and the ledger verifier parses tokens against it, so the two can never
// disagree on formatting.
type Format struct {
	Fields []FieldSpec
}

// Components holds the structural fields shared by every token of a run.
type Components struct {
	Area         int
	ProducerCode string
	Year         int
	ModelCode    string
	SerialWidth  int
}

// Layout returns the canonical token format for the given components:
// area-producer-year-model-serial with the serial zero-padded to SerialWidth.
func Layout(c Components) Format {
	return Format{Fields: []FieldSpec{
		{Name: "area"},
		{Name: "producer_code"},
		{Name: "year"},
		{Name: "model_code"},
		{Name: "serial", Width: c.SerialWidth},
	}}
}

// Render joins the supplied values per the format, zero-padding fixed-width
// fields. It fails when a value overflows its declared width.
func (f Format) Render(values []string) (string, error) {
	if len(values) != len(f.Fields) {
		return "", fmt.Errorf("format expects %d fields, got %d", len(f.Fields), len(values))
	}
	parts := make([]string, len(values))
	for i, spec := range f.Fields {
		value := values[i]
		if spec.Width > 0 {
			if len(value) > spec.Width {
				return "", fmt.Errorf("field %s value %q exceeds width %d", spec.Name, value, spec.Width)
			}
			value = strings.Repeat("0", spec.Width-len(value)) + value
		}
		parts[i] = value
	}
	return strings.Join(parts, Separator), nil
}

// Token formats the structural components plus a serial number into the final
// identifier string. It is a pure function of its inputs.
func Token(c Components, serial int) string {
	format := Layout(c)
	token, err := format.Render([]string{
		strconv.Itoa(c.Area),
		c.ProducerCode,
		strconv.Itoa(c.Year),
		c.ModelCode,
		strconv.Itoa(serial),
	})
	if err != nil {
		// Render only fails on width overflow, which Next guards against
		// before calling Token.
		panic(fmt.Sprintf("identifier: render token: %v", err))
	}
	return token
}

// ParseSerial extracts the serial component from a token that matches the
// components' structural prefix. The second return is false when the token
// does not conform to the layout.
func ParseSerial(token string, c Components) (int, bool) {
	parts := strings.Split(token, Separator)
	if len(parts) != 5 {
		return 0, false
	}
	if parts[0] != strconv.Itoa(c.Area) ||
		parts[1] != c.ProducerCode ||
		parts[2] != strconv.Itoa(c.Year) ||
		parts[3] != c.ModelCode {
		return 0, false
	}
	if len(parts[4]) != c.SerialWidth {
		return 0, false
	}
	serial, err := strconv.Atoi(parts[4])
	if err != nil || serial < 0 {
		return 0, false
	}
	return serial, true
}
