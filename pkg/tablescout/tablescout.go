// Package tablescout locates semantically named tables embedded in
// unstructured spreadsheet grids and determines their exact
// rectangular extent, given nothing but a header string to search for.
package tablescout

import (
	"fmt"

	"github.com/arborcap/tablescout/pkg/tablescout/grid"
	"github.com/arborcap/tablescout/pkg/tablescout/locate"
	"github.com/arborcap/tablescout/pkg/tablescout/models"
)

// Find opens the workbook at path and locates the table whose header
// cell contains headerText. It returns an error wrapping
// ErrTableNotFound when no sheet contains the text.
func Find(path, headerText string, opts Options) (*models.Result, error) {
	doc, err := grid.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return FindInDocument(doc, headerText, opts)
}

// FindInDocument locates a table in an already-open document. The
// document is treated as read-only for the duration of the call.
// Callers reusing one document across sequential lookups must clear
// any print areas set by an earlier export (extract.ClearPrintAreas)
// before the next lookup, since residual selection state can corrupt
// an adjacent scan in selection-based renderers.
func FindInDocument(doc *grid.Document, headerText string, opts Options) (*models.Result, error) {
	sheet, header, ok := locate.LocateHeader(doc, headerText)
	if !ok {
		return nil, fmt.Errorf("%w: header %q", ErrTableNotFound, headerText)
	}
	engine := locate.NewEngine(opts.style(), opts.names(), opts.scan())
	region := engine.Infer(sheet, header, headerText)
	region.Sheet = sheet.Name()
	return &models.Result{
		SheetIndex: sheet.Index(),
		SheetName:  sheet.Name(),
		Region:     region,
	}, nil
}

// FindOnSheet locates a table on one named sheet only. Sheet matching
// ignores case and surrounding whitespace. A missing sheet or a header
// miss both report ErrTableNotFound, so callers can fall back to the
// all-sheets search.
func FindOnSheet(doc *grid.Document, sheetName, headerText string, opts Options) (*models.Result, error) {
	sheet := doc.SheetByName(sheetName)
	if sheet == nil {
		return nil, fmt.Errorf("%w: sheet %q", ErrTableNotFound, sheetName)
	}
	header, ok := sheet.Search(headerText)
	if !ok {
		return nil, fmt.Errorf("%w: header %q on sheet %q", ErrTableNotFound, headerText, sheetName)
	}
	engine := locate.NewEngine(opts.style(), opts.names(), opts.scan())
	region := engine.Infer(sheet, header, headerText)
	region.Sheet = sheet.Name()
	return &models.Result{
		SheetIndex: sheet.Index(),
		SheetName:  sheet.Name(),
		Region:     region,
	}, nil
}
