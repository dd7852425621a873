// Package models defines data structures for table location.
package models

// RGB represents a cell background color.
type RGB struct {
	// R is the red component (0-255).
	R uint8 `json:"r"`
	// G is the green component (0-255).
	G uint8 `json:"g"`
	// B is the blue component (0-255).
	B uint8 `json:"b"`
}

// Cell is an immutable snapshot of a single grid cell.
type Cell struct {
	// Row is the row index (0-based).
	Row int `json:"row"`
	// Col is the column index (0-based).
	Col int `json:"col"`
	// Text is the trimmed display text, possibly empty.
	Text string `json:"text,omitempty"`
	// Number is the parsed numeric value (nil when not numeric).
	Number *float64 `json:"number,omitempty"`
	// HasFormula reports whether the cell carries a formula.
	HasFormula bool `json:"has_formula,omitempty"`
	// Color is the background fill color (nil when unstyled or unresolvable).
	Color *RGB `json:"color,omitempty"`
}

// Empty reports whether the cell carries neither text nor a numeric
// value nor a formula. Background styling is not considered here;
// callers that treat styled-but-blank cells as content layer that on top.
func (c Cell) Empty() bool {
	return c.Text == "" && c.Number == nil && !c.HasFormula
}
