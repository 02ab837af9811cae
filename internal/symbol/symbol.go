package symbol

import (
	"encoding/base64"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrCapacity indicates the token exceeds the QR data capacity for the chosen
// error correction strength.
var ErrCapacity = errors.New("token exceeds QR capacity")

// Options controls QR encoding.
type Options struct {
	// Level is the error correction strength: low, medium, high, or highest.
	Level string
	// SizePx is the rendered square size of the symbol in pixels.
	SizePx int
}

// Symbol is the rendered optical code for one token. It is immutable once
// produced; callers must not modify PNG.
type Symbol struct {
	Token  string
	Level  string
	SizePx int
	PNG    []byte
}

// RecoveryLevel maps a configuration string to the qrcode recovery level.
func RecoveryLevel(level string) (qrcode.RecoveryLevel, error) {
	switch level {
	case "low":
		return qrcode.Low, nil
	case "medium", "":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	default:
		return 0, fmt.Errorf("unknown error correction level %q", level)
	}
}

// Encode renders token as a QR symbol. Encoding is deterministic: the same
// token and options always produce byte-identical PNG output.
func Encode(token string, opts Options) (*Symbol, error) {
	if token == "" {
		return nil, errors.New("token must not be empty")
	}
	if opts.SizePx <= 0 {
		return nil, fmt.Errorf("symbol size must be positive, got %d", opts.SizePx)
	}
	level, err := RecoveryLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(token, level)
	if err != nil {
		// The only failure mode for a well-formed request is the content
		// exceeding the symbology's data capacity at this level.
		return nil, fmt.Errorf("%w: %v", ErrCapacity, err)
	}

	png, err := code.PNG(opts.SizePx)
	if err != nil {
		return nil, fmt.Errorf("render PNG: %w", err)
	}

	return &Symbol{
		Token:  token,
		Level:  opts.Level,
		SizePx: opts.SizePx,
		PNG:    png,
	}, nil
}

// DataURI returns the PNG payload as an inline-embeddable data URI, suitable
// for SVG image nodes.
func (s *Symbol) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(s.PNG)
}
