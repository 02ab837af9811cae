package config

const (
	defaultOutputDir   = "~/.local/share/tagpress/output"
	defaultLedgerPath  = "~/.local/share/tagpress/used_ids.csv"
	defaultJournalPath = "~/.local/share/tagpress/journal.db"
	defaultLogDir      = "~/.local/share/tagpress/logs"

	defaultArea         = 1
	defaultProducerCode = "24"
	defaultModelCode    = "D0"
	defaultSerialWidth  = 7

	// A4 page in points with the cell geometry of the original sticker
	// template: 18 rows by 6 columns, 108 labels per page.
	defaultSheetRows       = 18
	defaultSheetColumns    = 6
	defaultSheetCellWidth  = 93.1
	defaultSheetCellHeight = 42.0
	defaultSheetMarginX    = 21.3
	defaultSheetMarginY    = 43.4
	defaultSheetPageWidth  = 595.3
	defaultSheetPageHeight = 841.9

	defaultErrorCorrection = "medium"
	defaultSymbolSize      = 256

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. Code.Year has
// no default; it must be supplied in the config file or on the command line.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:   defaultOutputDir,
			LedgerPath:  defaultLedgerPath,
			JournalPath: defaultJournalPath,
			LogDir:      defaultLogDir,
		},
		Code: Code{
			Area:         defaultArea,
			ProducerCode: defaultProducerCode,
			ModelCode:    defaultModelCode,
			SerialWidth:  defaultSerialWidth,
		},
		Sheet: Sheet{
			Rows:       defaultSheetRows,
			Columns:    defaultSheetColumns,
			CellWidth:  defaultSheetCellWidth,
			CellHeight: defaultSheetCellHeight,
			MarginX:    defaultSheetMarginX,
			MarginY:    defaultSheetMarginY,
			PageWidth:  defaultSheetPageWidth,
			PageHeight: defaultSheetPageHeight,
		},
		QR: QR{
			ErrorCorrection: defaultErrorCorrection,
			SymbolSize:      defaultSymbolSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
