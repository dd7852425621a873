package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// printAreaName is the workbook-builtin defined name for print areas.
const printAreaName = "_xlnm.Print_Area"

// SetPrintArea marks the top-left rows x cols block of the sheet as
// its print area, so selection- and print-area-based exporters render
// exactly the copied table.
func SetPrintArea(f *excelize.File, sheet string, rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("print area %dx%d: empty span", rows, cols)
	}
	end, err := excelize.CoordinatesToCellName(cols, rows, true)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: fmt.Sprintf("'%s'!$A$1:%s", sheet, end),
		Scope:    sheet,
	})
}

// ClearPrintAreas removes every print area from the workbook. A
// document reused across sequential lookups must be cleared of the
// selection state a prior export left behind, or the next scan can
// pick it up as content.
func ClearPrintAreas(f *excelize.File) error {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		if err := f.DeleteDefinedName(&excelize.DefinedName{Name: dn.Name, Scope: dn.Scope}); err != nil {
			return err
		}
	}
	return nil
}
