package locate

import (
	"strings"

	"github.com/arborcap/tablescout/pkg/tablescout/models"
)

// Grid is the minimal cell access capability the inference engine
// scans over. Implementations must return an empty cell, not an error,
// for positions outside the populated area.
type Grid interface {
	Cell(row, col int) models.Cell
}

// ScanParams holds the tunable bounds of boundary inference. All of
// them are safety or tolerance knobs; the defaults match the layout
// conventions of the source workbooks.
type ScanParams struct {
	// MaxColGap is the consecutive non-content column run that ends the
	// rightward column scan. Gaps shorter than this are spacing columns
	// inside one table.
	MaxColGap int
	// HeaderScanCols caps the rightward scan on the header row.
	HeaderScanCols int
	// DataScanCols caps the rightward scan on probed data rows.
	DataScanCols int
	// ProbeRows is how many rows beneath the header are probed to widen
	// the column span; tables may be wider in data rows than in the
	// header row.
	ProbeRows int
	// MaxScanRows caps the downward row scan.
	MaxScanRows int
	// MaxEmptyRows is the consecutive empty row run that ends the row
	// scan, absent a trailing Total row.
	MaxEmptyRows int
	// TotalLookahead is how many rows beyond an exhausted empty run are
	// checked for a trailing Total row before giving up.
	TotalLookahead int
	// FootnoteRows is how many rows after a Total row may carry
	// footnote lines.
	FootnoteRows int
	// MinCols is the minimum width of an inferred region.
	MinCols int
}

// DefaultScanParams returns scan bounds matching the source workbooks.
func DefaultScanParams() ScanParams {
	return ScanParams{
		MaxColGap:      4,
		HeaderScanCols: 100,
		DataScanCols:   30,
		ProbeRows:      25,
		MaxScanRows:    200,
		MaxEmptyRows:   3,
		TotalLookahead: 5,
		FootnoteRows:   2,
		MinCols:        2,
	}
}

// Engine infers the rectangular extent of a single table from its
// header cell. An Engine is immutable and safe to reuse across
// inferences; all scan progress lives in locals of each Infer call.
type Engine struct {
	style  StyleFunc
	names  *Registry
	params ScanParams
}

// NewEngine builds an engine from a header style classifier, a table
// name catalog, and scan bounds.
func NewEngine(style StyleFunc, names *Registry, params ScanParams) *Engine {
	if style == nil {
		style = NavyHeader(DefaultStyleParams())
	}
	if names == nil {
		names = DefaultRegistry()
	}
	return &Engine{style: style, names: names, params: params}
}

// scanState accumulates row scan progress for one Infer call.
type scanState struct {
	endRow     int
	emptyRun   int
	foundTotal bool
}

// Infer computes the inclusive region of the table anchored at header.
// tableName is the header text the caller searched for; it feeds the
// self-suppression rule so a table never ends on an echo of its own
// name. The returned region always starts at the header cell and spans
// at least MinCols columns.
func (e *Engine) Infer(g Grid, header models.Cell, tableName string) models.Region {
	endCol := e.columnSpan(g, header)
	endRow := e.rowSpan(g, header, endCol, tableName)
	return models.Region{
		StartRow: header.Row,
		StartCol: header.Col,
		EndRow:   endRow,
		EndCol:   endCol,
	}
}

// isContent reports whether a cell counts as table content: any text,
// numeric value, formula, or header banner styling.
func (e *Engine) isContent(c models.Cell) bool {
	return !c.Empty() || e.style(c)
}

// columnSpan scans rightward from the header cell for the table's last
// column: first along the header row, then along a bounded band of data
// rows beneath it, keeping the widest content column found.
func (e *Engine) columnSpan(g Grid, header models.Cell) int {
	end := header.Col + e.params.MinCols - 1
	if last, ok := e.contentRun(g, header.Row, header.Col, e.params.HeaderScanCols); ok && last > end {
		end = last
	}
	for i := 1; i <= e.params.ProbeRows; i++ {
		if last, ok := e.contentRun(g, header.Row+i, header.Col, e.params.DataScanCols); ok && last > end {
			end = last
		}
	}
	return end
}

// contentRun walks right from startCol on one row and returns the last
// content column seen before MaxColGap consecutive non-content columns.
func (e *Engine) contentRun(g Grid, row, startCol, maxCols int) (int, bool) {
	last, found := 0, false
	gap := 0
	for c := startCol; c < startCol+maxCols; c++ {
		if e.isContent(g.Cell(row, c)) {
			last, found = c, true
			gap = 0
			continue
		}
		gap++
		if gap >= e.params.MaxColGap {
			break
		}
	}
	return last, found
}

// rowSpan scans downward from the row after the header and returns the
// table's last row. Termination is either explicit (a neighboring
// table's header, or a Total row with its footnotes) or by empty-row
// exhaustion, in which case one buffer row is included to absorb
// trailing border formatting.
func (e *Engine) rowSpan(g Grid, header models.Cell, endCol int, tableName string) int {
	st := scanState{endRow: header.Row}
	limit := header.Row + e.params.MaxScanRows
	row := header.Row + 1
	for row <= limit {
		if e.startsNewTable(g, row, header.Col, endCol, tableName) {
			return st.endRow
		}
		first, ok := e.firstContent(g, row, header.Col, endCol)
		if !ok {
			st.emptyRun++
			if st.emptyRun >= e.params.MaxEmptyRows {
				if total, ok := e.trailingTotal(g, row+1, header.Col, endCol); ok {
					st.endRow = total
					st.foundTotal = true
					st.emptyRun = 0
					row = total + 1
					continue
				}
				return st.endRow + 1
			}
			row++
			continue
		}
		st.endRow = row
		st.emptyRun = 0
		if !st.foundTotal && hasTotalPrefix(first.Text) {
			st.foundTotal = true
			return e.captureFootnotes(g, row, header.Col, endCol, tableName)
		}
		row++
	}
	return st.endRow
}

// startsNewTable reports whether any cell of the row names a different
// known table. Header-styled cells are checked first: the banner is
// the strongest signal and must win over whatever plain text shares
// the row. Plain-text matches still stop the scan, catching neighbor
// tables whose header uses different styling.
func (e *Engine) startsNewTable(g Grid, row, startCol, endCol int, tableName string) bool {
	for c := startCol; c <= endCol; c++ {
		cell := g.Cell(row, c)
		if cell.Text == "" || !e.style(cell) {
			continue
		}
		if e.names.Boundary(cell.Text, tableName) {
			return true
		}
	}
	for c := startCol; c <= endCol; c++ {
		cell := g.Cell(row, c)
		if cell.Text == "" {
			continue
		}
		if e.names.Boundary(cell.Text, tableName) {
			return true
		}
	}
	return false
}

// firstContent returns the leftmost content cell of the row within the
// column span.
func (e *Engine) firstContent(g Grid, row, startCol, endCol int) (models.Cell, bool) {
	for c := startCol; c <= endCol; c++ {
		if cell := g.Cell(row, c); e.isContent(cell) {
			return cell, true
		}
	}
	return models.Cell{}, false
}

// trailingTotal looks ahead from row for a Total line separated from
// the table body by blank rows, and returns its row index. Without
// this, a table whose Total sits below a styling gap would be cut
// short.
func (e *Engine) trailingTotal(g Grid, row, startCol, endCol int) (int, bool) {
	for i := 0; i < e.params.TotalLookahead; i++ {
		r := row + i
		for c := startCol; c <= endCol; c++ {
			if hasTotalPrefix(g.Cell(r, c).Text) {
				return r, true
			}
		}
	}
	return 0, false
}

// captureFootnotes extends the span past a Total row over footnote
// lines ("* ..." text) and blank separator rows, up to FootnoteRows
// rows, then stops. A neighboring table's header ends the capture
// immediately.
func (e *Engine) captureFootnotes(g Grid, totalRow, startCol, endCol int, tableName string) int {
	end := totalRow
	for i := 1; i <= e.params.FootnoteRows; i++ {
		row := totalRow + i
		if e.startsNewTable(g, row, startCol, endCol, tableName) {
			break
		}
		first, ok := e.firstContent(g, row, startCol, endCol)
		if !ok {
			continue
		}
		if !strings.HasPrefix(first.Text, "*") {
			break
		}
		end = row
	}
	return end
}

func hasTotalPrefix(s string) bool {
	return len(s) >= 5 && strings.EqualFold(s[:5], "total")
}
