// Package logging assembles structured slog loggers for tagpress.
//
// It owns console/JSON handler construction, level parsing, and multi-output
// plumbing (stdout plus a log file under the configured log directory). A
// no-op logger is available for tests.
//
// Prefer these constructors over hand-rolled slog setup so all components emit
// log lines with the same shape and routing.
package logging
