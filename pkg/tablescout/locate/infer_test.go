package locate

import (
	"testing"

	"github.com/arborcap/tablescout/pkg/tablescout/models"
)

var navy = &models.RGB{R: 31, G: 56, B: 100}

// fakeGrid is an in-memory Grid for engine tests.
type fakeGrid struct {
	cells map[[2]int]models.Cell
}

func newFakeGrid() *fakeGrid {
	return &fakeGrid{cells: make(map[[2]int]models.Cell)}
}

func (g *fakeGrid) Cell(row, col int) models.Cell {
	if c, ok := g.cells[[2]int{row, col}]; ok {
		return c
	}
	return models.Cell{Row: row, Col: col}
}

func (g *fakeGrid) text(row, col int, s string) *fakeGrid {
	g.cells[[2]int{row, col}] = models.Cell{Row: row, Col: col, Text: s}
	return g
}

func (g *fakeGrid) num(row, col int, v float64) *fakeGrid {
	g.cells[[2]int{row, col}] = models.Cell{Row: row, Col: col, Number: &v}
	return g
}

// banner places header-styled text; an empty s gives a styled blank cell.
func (g *fakeGrid) banner(row, col int, s string) *fakeGrid {
	g.cells[[2]int{row, col}] = models.Cell{Row: row, Col: col, Text: s, Color: navy}
	return g
}

func newTestEngine() *Engine {
	return NewEngine(NavyHeader(DefaultStyleParams()), DefaultRegistry(), DefaultScanParams())
}

func TestInferMinimumSpan(t *testing.T) {
	g := newFakeGrid().text(2, 1, "Sources and Uses")
	region := newTestEngine().Infer(g, g.Cell(2, 1), "Sources and Uses")

	if region.StartRow != 2 || region.StartCol != 1 {
		t.Errorf("region start = (%d, %d), expected header position (2, 1)",
			region.StartRow, region.StartCol)
	}
	if region.Cols() < 2 {
		t.Errorf("region spans %d columns, expected at least 2", region.Cols())
	}
	if region.Rows() < 1 {
		t.Errorf("region spans %d rows, expected at least 1", region.Rows())
	}
}

func TestInferIdempotent(t *testing.T) {
	g := newFakeGrid().
		banner(0, 0, "Loan to Cost").
		text(1, 0, "Land").num(1, 3, 1000).
		text(2, 0, "Total").num(2, 3, 1000)

	e := newTestEngine()
	first := e.Infer(g, g.Cell(0, 0), "Loan to Cost")
	second := e.Infer(g, g.Cell(0, 0), "Loan to Cost")
	if first != second {
		t.Errorf("repeated inference differs: %+v vs %+v", first, second)
	}
}

func TestInferColumnGapTolerance(t *testing.T) {
	// Gaps of up to 3 empty columns are spacing inside one table.
	g := newFakeGrid().
		text(0, 0, "Loan to Cost").
		num(0, 3, 100).
		num(0, 6, 200)
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Loan to Cost")

	if region.EndCol != 6 {
		t.Errorf("EndCol = %d, expected 6", region.EndCol)
	}
}

func TestInferColumnLargeGapTerminates(t *testing.T) {
	// 4 consecutive empty columns end the table; content beyond the gap
	// belongs to a neighbor.
	g := newFakeGrid().
		text(0, 0, "Loan to Cost").
		num(0, 1, 100).
		num(0, 9, 999)
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Loan to Cost")

	if region.EndCol != 1 {
		t.Errorf("EndCol = %d, expected 1", region.EndCol)
	}
}

func TestInferColumnWidensFromDataRows(t *testing.T) {
	// Data rows may be wider than the header row. The 3-column gap
	// between the label and the value stays inside the tolerance.
	g := newFakeGrid().
		text(0, 0, "Loan to Cost").
		text(1, 0, "Land").num(1, 4, 1000)
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Loan to Cost")

	if region.EndCol != 4 {
		t.Errorf("EndCol = %d, expected 4", region.EndCol)
	}
}

func TestInferStyledBlankCellsAreContent(t *testing.T) {
	// A navy banner often runs past the header text over blank cells.
	g := newFakeGrid().
		banner(0, 0, "Capital Stack at Closing").
		banner(0, 1, "").banner(0, 2, "").banner(0, 3, "")
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Capital Stack at Closing")

	if region.EndCol != 3 {
		t.Errorf("EndCol = %d, expected 3", region.EndCol)
	}
}

func TestInferSelfSuppression(t *testing.T) {
	// A table never ends on an echo of its own name in its rows.
	g := newFakeGrid().
		banner(0, 0, "Capital Stack at Closing").
		text(1, 0, "Senior Loan").num(1, 1, 70).
		banner(2, 0, "Capital Stack").
		text(3, 0, "Mezzanine").num(3, 1, 20)
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Capital Stack at Closing")

	if region.EndRow < 3 {
		t.Errorf("EndRow = %d, expected at least 3 (own-name echo must not stop the scan)", region.EndRow)
	}
}

func TestInferStrongHeaderStopsRow(t *testing.T) {
	g := newFakeGrid().
		text(0, 0, "Loan to Cost").
		text(1, 0, "Land").num(1, 1, 100).
		text(2, 0, "Hard Costs").num(2, 1, 200).
		banner(3, 0, "Sources and Uses").text(3, 1, "memo")
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Loan to Cost")

	if region.EndRow != 2 {
		t.Errorf("EndRow = %d, expected 2 (stop before the next table's header)", region.EndRow)
	}
}

func TestInferUnstyledHeaderStillStops(t *testing.T) {
	// A neighbor whose header uses different styling is caught by text.
	g := newFakeGrid().
		text(0, 0, "Loan to Cost").
		text(1, 0, "Land").num(1, 1, 100).
		text(2, 0, "Draw at Closing")
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Loan to Cost")

	if region.EndRow != 1 {
		t.Errorf("EndRow = %d, expected 1", region.EndRow)
	}
}

func TestInferTotalLookahead(t *testing.T) {
	// [data, data, empty x3, Total, footnote, next header]: the Total and
	// footnote rows belong to the table, the next header does not.
	g := newFakeGrid().
		text(0, 0, "Draw at Closing").
		text(1, 0, "Initial Advance").num(1, 1, 500).
		text(2, 0, "Holdback").num(2, 1, 50).
		text(6, 0, "Total Draw").num(6, 1, 550).
		text(7, 0, "* see note 4").
		banner(8, 0, "Sources and Uses")
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Draw at Closing")

	if region.EndRow != 7 {
		t.Errorf("EndRow = %d, expected 7 (Total and footnote included, next header excluded)", region.EndRow)
	}
}

func TestInferTotalRowCapturesFootnotes(t *testing.T) {
	g := newFakeGrid().
		text(0, 0, "Sources and Uses").
		text(1, 0, "Land").num(1, 1, 100).
		text(2, 0, "Total Uses").num(2, 1, 100).
		text(3, 0, "* excludes closing costs").
		text(4, 0, "Unrelated narrative")
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Sources and Uses")

	if region.EndRow != 3 {
		t.Errorf("EndRow = %d, expected 3 (footnote captured, trailing narrative not)", region.EndRow)
	}
}

func TestInferEmptyExhaustionAddsBufferRow(t *testing.T) {
	g := newFakeGrid().
		text(0, 0, "Loan to Cost").
		text(1, 0, "Land").num(1, 1, 100).
		text(2, 0, "Hard Costs").num(2, 1, 200)
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Loan to Cost")

	if region.EndRow != 3 {
		t.Errorf("EndRow = %d, expected 3 (last content row plus one buffer row)", region.EndRow)
	}
}

func TestInferSingleEmptyRowInsideTable(t *testing.T) {
	// One or two blank spacer rows do not end a table.
	g := newFakeGrid().
		text(0, 0, "Sources and Uses").
		text(1, 0, "Land").num(1, 1, 100).
		text(3, 0, "Hard Costs").num(3, 1, 200).
		text(4, 0, "Soft Costs").num(4, 1, 50)
	region := newTestEngine().Infer(g, g.Cell(0, 0), "Sources and Uses")

	if region.EndRow < 4 {
		t.Errorf("EndRow = %d, expected at least 4 (spacer row must not end the table)", region.EndRow)
	}
}

func TestInferRowCapBoundsScan(t *testing.T) {
	params := DefaultScanParams()
	params.MaxScanRows = 10

	g := newFakeGrid().text(0, 0, "Loan to Cost")
	for r := 1; r <= 50; r++ {
		g.num(r, 0, float64(r))
	}
	e := NewEngine(NavyHeader(DefaultStyleParams()), DefaultRegistry(), params)
	region := e.Infer(g, g.Cell(0, 0), "Loan to Cost")

	if region.EndRow != 10 {
		t.Errorf("EndRow = %d, expected the 10-row cap to bind", region.EndRow)
	}
}
