// Package locate finds a named table on a worksheet and infers its
// rectangular extent from content runs, header banner styling, and a
// catalog of known table names.
package locate

import (
	"github.com/arborcap/tablescout/pkg/tablescout/grid"
	"github.com/arborcap/tablescout/pkg/tablescout/models"
)

// LocateHeader searches the document's sheets in workbook order for the
// first cell whose text contains headerText (case-insensitive) and
// returns the owning sheet and the matching cell. A miss is a normal
// outcome, reported by the boolean.
func LocateHeader(doc *grid.Document, headerText string) (*grid.Sheet, models.Cell, bool) {
	for _, s := range doc.Sheets() {
		if cell, ok := s.Search(headerText); ok {
			return s, cell, true
		}
	}
	return nil, models.Cell{}, false
}
