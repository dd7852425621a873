package tablescout

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/arborcap/tablescout/pkg/tablescout/grid"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a two-sheet workbook whose second sheet stacks a
// Sources and Uses table above a Capital Stack table, the way the
// origination workbooks lay them out.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Cover Page")

	if _, err := f.NewSheet("S&U"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	navy, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F3864"}},
	})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}

	f.SetCellValue("S&U", "A6", "Sources and Uses")
	f.SetCellValue("S&U", "B6", "Uses")
	f.SetCellValue("S&U", "C6", "Amount")
	f.SetCellStyle("S&U", "A6", "C6", navy)
	f.SetCellValue("S&U", "A7", "Land")
	f.SetCellValue("S&U", "C7", 100)
	f.SetCellValue("S&U", "A8", "Hard Costs")
	f.SetCellValue("S&U", "C8", 200)
	f.SetCellValue("S&U", "A9", "Total Uses")
	f.SetCellValue("S&U", "C9", 300)

	f.SetCellValue("S&U", "A13", "Capital Stack at Closing")
	f.SetCellStyle("S&U", "A13", "A13", navy)
	f.SetCellValue("S&U", "A14", "Senior Loan")
	f.SetCellValue("S&U", "B14", "70%")
	f.SetCellValue("S&U", "A15", "Total")
	f.SetCellValue("S&U", "B15", "100%")

	path := filepath.Join(t.TempDir(), "deal.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestFind(t *testing.T) {
	res, err := Find(writeWorkbook(t), "Sources and Uses", DefaultOptions())
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if res.SheetName != "S&U" || res.SheetIndex != 1 {
		t.Errorf("found on sheet %q (index %d), expected S&U (index 1)", res.SheetName, res.SheetIndex)
	}
	r := res.Region
	if r.StartRow != 5 || r.StartCol != 0 {
		t.Errorf("region starts at (%d, %d), expected the header cell (5, 0)", r.StartRow, r.StartCol)
	}
	if r.EndCol != 2 {
		t.Errorf("EndCol = %d, expected 2", r.EndCol)
	}
	if r.EndRow != 8 {
		t.Errorf("EndRow = %d, expected 8 (table ends at its Total row)", r.EndRow)
	}
	if r.Contains(12, 0) {
		t.Errorf("region %s swallowed the Capital Stack table below", r.Range())
	}
}

func TestFindInDocumentSequentialLookups(t *testing.T) {
	doc, err := grid.Open(writeWorkbook(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	first, err := FindInDocument(doc, "Sources and Uses", DefaultOptions())
	if err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	second, err := FindInDocument(doc, "Capital Stack at Closing", DefaultOptions())
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}

	if second.Region.StartRow != 12 {
		t.Errorf("Capital Stack starts at row %d, expected 12", second.Region.StartRow)
	}
	if second.Region.StartRow <= first.Region.EndRow {
		t.Errorf("regions overlap: %s and %s", first.Region.Range(), second.Region.Range())
	}
}

func TestFindOnSheet(t *testing.T) {
	doc, err := grid.Open(writeWorkbook(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	res, err := FindOnSheet(doc, " s&u ", "Sources and Uses", DefaultOptions())
	if err != nil {
		t.Fatalf("FindOnSheet failed: %v", err)
	}
	if res.SheetName != "S&U" || res.Region.StartRow != 5 {
		t.Errorf("found %s on %q, expected the S&U table at row 5", res.Region.Range(), res.SheetName)
	}

	// The header is not on the hinted sheet.
	if _, err := FindOnSheet(doc, "Sheet1", "Sources and Uses", DefaultOptions()); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("err = %v, expected ErrTableNotFound for a sheet without the header", err)
	}

	// The hinted sheet does not exist at all.
	if _, err := FindOnSheet(doc, "Bogus", "Sources and Uses", DefaultOptions()); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("err = %v, expected ErrTableNotFound for an unknown sheet", err)
	}
}

func TestFindNotFound(t *testing.T) {
	_, err := Find(writeWorkbook(t), "Nonexistent Table", DefaultOptions())
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("err = %v, expected ErrTableNotFound", err)
	}
}

func TestFindBadFile(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing.xlsx"), "Sources and Uses", DefaultOptions())
	if err == nil {
		t.Error("expected an error for a missing file")
	}
	if errors.Is(err, ErrTableNotFound) {
		t.Error("a missing file must not be reported as table-not-found")
	}
}
