// Package symbol renders identifier tokens as scannable QR codes.
//
// Encode produces a deterministic PNG payload plus the metadata the sheet
// assembler needs to size cells. Symbols are immutable artifacts; the data-URI
// form is what gets embedded into SVG output.
package symbol
