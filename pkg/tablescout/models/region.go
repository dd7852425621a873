package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Region is an inclusive rectangular cell span on one sheet.
// All coordinates are 0-based; StartRow <= EndRow and StartCol <= EndCol.
type Region struct {
	// Sheet is the owning sheet name.
	Sheet string `json:"sheet"`
	// StartRow is the first row of the span.
	StartRow int `json:"start_row"`
	// StartCol is the first column of the span.
	StartCol int `json:"start_col"`
	// EndRow is the last row of the span (inclusive).
	EndRow int `json:"end_row"`
	// EndCol is the last column of the span (inclusive).
	EndCol int `json:"end_col"`
}

// Rows returns the number of rows in the region.
func (r Region) Rows() int { return r.EndRow - r.StartRow + 1 }

// Cols returns the number of columns in the region.
func (r Region) Cols() int { return r.EndCol - r.StartCol + 1 }

// Contains reports whether the (row, col) position lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// Range returns the region in A1 reference notation (e.g. "A6:N27").
func (r Region) Range() string {
	start, err := excelize.CoordinatesToCellName(r.StartCol+1, r.StartRow+1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(r.EndCol+1, r.EndRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", start, end)
}
