// Package table provides a small auto-layout table builder for PDF documents.
//
// It renders borderless "plain" tables in the style invoice layouts use:
// fixed or auto-fill column widths, a style cascade (table, column, row,
// cell), per-column fills, optional hairline separators between body rows,
// and wrapped multi-line text. Auto-width columns split the remaining table
// width evenly after fixed columns are subtracted.
package table

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// LineStyle defines the width and color of a drawn rule.
type LineStyle struct {
	Width float64
	Color RGBColor
}

// CellStyle defines the visual appearance of a cell. Nil fields inherit
// from the next level of the cascade.
type CellStyle struct {
	FillColor *RGBColor
	TextColor *RGBColor
	Font      *FontSpec
	Align     string // "L", "C", "R"
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	// Border, when set, draws a rectangle around every cell. Left nil the
	// table stays borderless.
	Border *LineStyle
	// RowSeparator, when set, draws a hairline across the top edge of every
	// body row after the first.
	RowSeparator *LineStyle
	HeaderStyle *CellStyle
	CellPadding Padding
	// HeaderPadding overrides CellPadding for header rows when set.
	HeaderPadding *Padding
	CellFont      *FontSpec
}
