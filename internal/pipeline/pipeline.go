package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tagpress/internal/config"
	"tagpress/internal/identifier"
	"tagpress/internal/journal"
	"tagpress/internal/ledger"
	"tagpress/internal/logging"
	"tagpress/internal/sheet"
	"tagpress/internal/symbol"
)

// Result summarizes one generation run.
type Result struct {
	RunID             string
	Requested         int
	Issued            int
	Pages             int
	FirstToken        string
	LastToken         string
	SkippedLedgerRows int
	OutputDir         string
}

// Runner drives the generation pipeline: ledger load, identifier generation,
// QR encoding, sheet assembly, ledger append, and journal recording. All work
// is strictly sequential; the ledger is owned for the lifetime of one run.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner builds a runner over a validated configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("runner requires a config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}, nil
}

// Run generates count identifiers, renders them onto label pages, and
// persists each one to the ledger. Interrupting the run leaves the ledger
// valid; a restart resumes from the highest persisted serial. Requesting zero
// identifiers produces zero pages.
func (r *Runner) Run(ctx context.Context, count int) (*Result, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()

	led, err := ledger.Open(r.cfg.Paths.LedgerPath)
	if err != nil {
		return nil, err
	}
	defer led.Close()

	if skipped := led.SkippedRows(); skipped > 0 {
		r.logger.Warn("ledger contains malformed rows",
			logging.Int("skipped", skipped),
			logging.String("ledger", r.cfg.Paths.LedgerPath))
	}

	assembler, err := sheet.NewAssembler(geometry(r.cfg.Sheet), r.pageWriter())
	if err != nil {
		return nil, err
	}

	components := codeComponents(r.cfg.Code)
	known := led.Tokens()
	lastSerial := led.MaxSerial()
	opts := symbol.Options{Level: r.cfg.QR.ErrorCorrection, SizePx: r.cfg.QR.SymbolSize}

	result := &Result{
		RunID:             uuid.NewString(),
		Requested:         count,
		SkippedLedgerRows: led.SkippedRows(),
		OutputDir:         r.cfg.Paths.OutputDir,
	}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := identifier.Next(components, known, lastSerial)
		if err != nil {
			return nil, err
		}

		sym, err := symbol.Encode(rec.Token, opts)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", rec.Token, err)
		}

		if err := assembler.Place(rec, sym); err != nil {
			return nil, err
		}
		if err := led.Append(rec, time.Now()); err != nil {
			return nil, err
		}

		known[rec.Token] = struct{}{}
		lastSerial = rec.Serial
		if result.FirstToken == "" {
			result.FirstToken = rec.Token
		}
		result.LastToken = rec.Token
		result.Issued++

		r.logger.Debug("issued identifier",
			logging.String("token", rec.Token),
			logging.Int("serial", rec.Serial))
	}

	if err := assembler.Close(); err != nil {
		return nil, err
	}
	result.Pages = assembler.Pages()

	r.recordRun(ctx, result, startedAt)

	r.logger.Info("generation run complete",
		logging.String("run_id", result.RunID),
		logging.Int("requested", result.Requested),
		logging.Int("issued", result.Issued),
		logging.Int("pages", result.Pages),
		logging.String("output_dir", result.OutputDir))
	return result, nil
}

// recordRun stores the run summary in the journal. The journal is reporting
// history, not the source of truth, so failures degrade to a warning.
func (r *Runner) recordRun(ctx context.Context, result *Result, startedAt time.Time) {
	store, err := journal.Open(r.cfg.Paths.JournalPath)
	if err != nil {
		r.logger.Warn("open run journal", logging.Error(err))
		return
	}
	defer store.Close()

	snapshot, err := json.Marshal(r.cfg)
	if err != nil {
		r.logger.Warn("snapshot config for journal", logging.Error(err))
		snapshot = []byte("{}")
	}

	run := journal.Run{
		ID:         result.RunID,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Requested:  result.Requested,
		Issued:     result.Issued,
		Pages:      result.Pages,
		FirstToken: result.FirstToken,
		LastToken:  result.LastToken,
		ConfigJSON: string(snapshot),
	}
	if err := store.Record(ctx, run); err != nil {
		r.logger.Warn("record run in journal", logging.Error(err))
	}
}

func (r *Runner) pageWriter() sheet.PageWriter {
	return func(name string) (io.WriteCloser, error) {
		path := filepath.Join(r.cfg.Paths.OutputDir, name)
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create page %s: %w", path, err)
		}
		r.logger.Info("writing label page", logging.String("path", path))
		return file, nil
	}
}

func codeComponents(code config.Code) identifier.Components {
	return identifier.Components{
		Area:         code.Area,
		ProducerCode: code.ProducerCode,
		Year:         code.Year,
		ModelCode:    code.ModelCode,
		SerialWidth:  code.SerialWidth,
	}
}

func geometry(s config.Sheet) sheet.Geometry {
	return sheet.Geometry{
		Rows:       s.Rows,
		Columns:    s.Columns,
		CellWidth:  s.CellWidth,
		CellHeight: s.CellHeight,
		MarginX:    s.MarginX,
		MarginY:    s.MarginY,
		PageWidth:  s.PageWidth,
		PageHeight: s.PageHeight,
	}
}
