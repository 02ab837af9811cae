// Package pipeline orchestrates one label generation run.
//
// The runner loads the ledger, asks the identifier generator for the next
// unique token, encodes it as a QR symbol, places it on the current sheet, and
// appends it to the ledger, one identifier at a time. Finished runs are
// summarized in the journal. Every core error propagates to the caller; the
// only locally recovered condition is a malformed ledger row, which is logged
// as a warning.
package pipeline
