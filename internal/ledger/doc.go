// Package ledger persists every issued token in an append-only CSV file and
// answers duplicate checks against the in-memory set built at load time.
//
// The file is the single source of truth for uniqueness across runs. Rows are
// appended with one write plus a sync each, so a crash between records leaves
// a valid file missing only the uncommitted row. Malformed rows are skipped
// with a warning count instead of failing the load. An advisory file lock
// enforces a single writer per ledger.
package ledger
