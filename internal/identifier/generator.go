package identifier

import (
	"errors"
	"fmt"
)

// ErrSequenceExhausted indicates the configured serial width has no remaining
// representable values.
var ErrSequenceExhausted = errors.New("serial sequence exhausted")

// Record is one issued identifier: the structural components, the serial they
// were combined with, and the resulting token.
type Record struct {
	Components Components
	Serial     int
	Token      string
}

// MaxSerial returns the highest serial representable at the given width.
func MaxSerial(width int) int {
	max := 1
	for i := 0; i < width; i++ {
		max *= 10
	}
	return max - 1
}

// Next composes the structural components with the next serial value and
// returns the resulting record. The caller supplies the set of already issued
// tokens and the highest serial observed so far; when the composed token
// collides with an existing one (possible only after sequence bookkeeping was
// reset or a corrupted ledger), the serial advances and composition retries.
//
// Next is deterministic: identical inputs always yield the identical record.
func Next(c Components, known map[string]struct{}, lastSerial int) (Record, error) {
	max := MaxSerial(c.SerialWidth)
	if lastSerial < 0 {
		lastSerial = 0
	}
	for serial := lastSerial + 1; serial <= max; serial++ {
		token := Token(c, serial)
		if _, exists := known[token]; exists {
			continue
		}
		return Record{Components: c, Serial: serial, Token: token}, nil
	}
	return Record{}, fmt.Errorf("%w: width %d allows at most %d serials", ErrSequenceExhausted, c.SerialWidth, max)
}
