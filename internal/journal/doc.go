// Package journal records completed generation runs in SQLite.
//
// Each run row captures when it ran, how many identifiers were requested and
// issued, how many pages were written, the token range, and a snapshot of the
// effective configuration. The journal is reporting history only; token
// uniqueness is enforced solely by the ledger.
package journal
