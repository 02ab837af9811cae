// Package identifier composes structured, collision-free identifier tokens.
//
// A token is the dash-joined concatenation of an area digit, producer code,
// year, model code, and a zero-padded serial. The layout is declared once as a
// Format so generation and validation share a single source of truth. Next is
// a pure function over explicit inputs (components, known token set, last
// serial); there is no hidden counter state, which keeps runs reproducible and
// restart-safe.
package identifier
