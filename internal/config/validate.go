package config

import (
	"errors"
	"fmt"
)

var validErrorCorrection = map[string]struct{}{
	"low":     {},
	"medium":  {},
	"high":    {},
	"highest": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCode(); err != nil {
		return err
	}
	if err := c.validateSheet(); err != nil {
		return err
	}
	if err := c.validateQR(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.LedgerPath == "" {
		return errors.New("paths.ledger_path must be set")
	}
	if c.Paths.JournalPath == "" {
		return errors.New("paths.journal_path must be set")
	}
	return nil
}

func (c *Config) validateCode() error {
	if c.Code.Area < 0 || c.Code.Area > 9 {
		return errors.New("code.area must be a single digit (0-9)")
	}
	if c.Code.ProducerCode == "" {
		return errors.New("code.producer_code must be set")
	}
	if c.Code.ModelCode == "" {
		return errors.New("code.model_code must be set")
	}
	if c.Code.Year < 1000 || c.Code.Year > 9999 {
		return fmt.Errorf("code.year must be a four-digit year, got %d", c.Code.Year)
	}
	if c.Code.SerialWidth < 1 || c.Code.SerialWidth > 9 {
		return fmt.Errorf("code.serial_width must be between 1 and 9, got %d", c.Code.SerialWidth)
	}
	return nil
}

func (c *Config) validateSheet() error {
	if c.Sheet.Rows <= 0 {
		return errors.New("sheet.rows must be positive")
	}
	if c.Sheet.Columns <= 0 {
		return errors.New("sheet.columns must be positive")
	}
	for name, value := range map[string]float64{
		"sheet.cell_width":  c.Sheet.CellWidth,
		"sheet.cell_height": c.Sheet.CellHeight,
		"sheet.page_width":  c.Sheet.PageWidth,
		"sheet.page_height": c.Sheet.PageHeight,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Sheet.MarginX < 0 || c.Sheet.MarginY < 0 {
		return errors.New("sheet margins must not be negative")
	}
	if c.Sheet.MarginX+float64(c.Sheet.Columns)*c.Sheet.CellWidth > c.Sheet.PageWidth {
		return fmt.Errorf("sheet grid exceeds page width: %d columns of %.1f do not fit in %.1f",
			c.Sheet.Columns, c.Sheet.CellWidth, c.Sheet.PageWidth)
	}
	if c.Sheet.MarginY+float64(c.Sheet.Rows)*c.Sheet.CellHeight > c.Sheet.PageHeight {
		return fmt.Errorf("sheet grid exceeds page height: %d rows of %.1f do not fit in %.1f",
			c.Sheet.Rows, c.Sheet.CellHeight, c.Sheet.PageHeight)
	}
	return nil
}

func (c *Config) validateQR() error {
	if _, ok := validErrorCorrection[c.QR.ErrorCorrection]; !ok {
		return fmt.Errorf("qr.error_correction must be one of low, medium, high, highest; got %q", c.QR.ErrorCorrection)
	}
	if c.QR.SymbolSize <= 0 {
		return errors.New("qr.symbol_size must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
