// Package sheet tiles identifier labels into paginated SVG documents.
//
// The assembler fills a fixed rows-by-columns grid in strict row-major order.
// A page moves from empty to filling as cells are placed, is serialized the
// instant it reaches capacity, and Close flushes a trailing partial page.
// Each cell carries a rounded outline, the QR symbol as an embedded PNG data
// URI, and the literal token split over two text lines.
package sheet
