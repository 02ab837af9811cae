package testsupport

import (
	"path/filepath"
	"testing"

	"tagpress/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a validated config rooted in a unique temp directory per
// test. It defaults the year and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Code.Year = 2024
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LedgerPath = filepath.Join(base, "used_ids.csv")
	cfg.Paths.JournalPath = filepath.Join(base, "journal.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithGrid overrides the sheet grid dimensions on the test config.
func WithGrid(rows, columns int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sheet.Rows = rows
		cfg.Sheet.Columns = columns
	}
}

// WithSerialWidth overrides the serial digit width on the test config.
func WithSerialWidth(width int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Code.SerialWidth = width
	}
}

// WithSymbolSize overrides the rendered QR pixel size on the test config.
func WithSymbolSize(px int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.QR.SymbolSize = px
	}
}
