package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"tagpress/internal/identifier"
)

// header names the ledger columns. The token column is first so the file can
// be inspected (and deduplicated) with ordinary text tools.
var header = []string{"token", "area", "producer_code", "year", "model_code", "serial", "issued_at"}

// Entry is one persisted ledger row.
type Entry struct {
	Token        string
	Area         int
	ProducerCode string
	Year         int
	ModelCode    string
	Serial       int
	IssuedAt     time.Time
}

// Ledger is the durable, append-only record of issued tokens. Open acquires an
// exclusive advisory lock so only one generation run writes at a time; rows
// are never rewritten or removed.
type Ledger struct {
	path string
	file *os.File
	lock *flock.Flock

	tokens    map[string]struct{}
	maxSerial int
	skipped   int
	empty     bool
}

// Open locks the ledger for writing, loads all persisted entries into memory,
// and prepares the append handle. The backing file is created when absent and
// never truncated.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ledger lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("ledger %s is locked by another run", path)
	}

	entries, skipped, err := Read(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("stat ledger: %w", err)
	}

	l := &Ledger{
		path:    path,
		file:    file,
		lock:    lock,
		tokens:  make(map[string]struct{}, len(entries)),
		skipped: skipped,
		empty:   info.Size() == 0,
	}
	for _, entry := range entries {
		l.tokens[entry.Token] = struct{}{}
		if entry.Serial > l.maxSerial {
			l.maxSerial = entry.Serial
		}
	}
	return l, nil
}

// Contains reports whether the token was ever issued.
func (l *Ledger) Contains(token string) bool {
	_, ok := l.tokens[token]
	return ok
}

// MaxSerial returns the highest serial observed across all persisted entries.
func (l *Ledger) MaxSerial() int { return l.maxSerial }

// Count returns the number of issued tokens currently known.
func (l *Ledger) Count() int { return len(l.tokens) }

// SkippedRows returns how many malformed rows were skipped during load.
func (l *Ledger) SkippedRows() int { return l.skipped }

// Tokens returns a copy of the known token set for the generator.
func (l *Ledger) Tokens() map[string]struct{} {
	tokens := make(map[string]struct{}, len(l.tokens))
	for token := range l.tokens {
		tokens[token] = struct{}{}
	}
	return tokens
}

// Append durably persists one record. The row (plus the header, on a fresh
// file) is written with a single write call followed by a sync, so an
// interrupted process leaves either the complete row or nothing.
func (l *Ledger) Append(rec identifier.Record, issuedAt time.Time) error {
	if l.Contains(rec.Token) {
		return fmt.Errorf("token %s already issued", rec.Token)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if l.empty {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	}
	row := []string{
		rec.Token,
		strconv.Itoa(rec.Components.Area),
		rec.Components.ProducerCode,
		strconv.Itoa(rec.Components.Year),
		rec.Components.ModelCode,
		strconv.Itoa(rec.Serial),
		issuedAt.UTC().Format(time.RFC3339),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	if _, err := l.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append to ledger: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}

	l.empty = false
	l.tokens[rec.Token] = struct{}{}
	if rec.Serial > l.maxSerial {
		l.maxSerial = rec.Serial
	}
	return nil
}

// Close releases the append handle and the run lock.
func (l *Ledger) Close() error {
	if l == nil {
		return nil
	}
	var closeErr error
	if l.file != nil {
		closeErr = l.file.Close()
		l.file = nil
	}
	if l.lock != nil {
		if err := l.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
		l.lock = nil
	}
	return closeErr
}

// Read parses all entries from the ledger file without taking the run lock.
// Malformed rows are skipped and counted rather than failing the whole read;
// a missing file yields an empty result.
func Read(path string) ([]Entry, int, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open ledger %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var entries []Entry
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Row-level parse failure: skip and continue.
			skipped++
			continue
		}
		if len(row) > 0 && row[0] == header[0] {
			continue
		}
		entry, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func parseRow(row []string) (Entry, bool) {
	if len(row) != len(header) || row[0] == "" {
		return Entry{}, false
	}
	area, err := strconv.Atoi(row[1])
	if err != nil {
		return Entry{}, false
	}
	year, err := strconv.Atoi(row[3])
	if err != nil {
		return Entry{}, false
	}
	serial, err := strconv.Atoi(row[5])
	if err != nil || serial < 0 {
		return Entry{}, false
	}
	issuedAt, err := time.Parse(time.RFC3339, row[6])
	if err != nil {
		return Entry{}, false
	}
	return Entry{
		Token:        row[0],
		Area:         area,
		ProducerCode: row[2],
		Year:         year,
		ModelCode:    row[4],
		Serial:       serial,
		IssuedAt:     issuedAt,
	}, true
}
