package grid

import (
	"strings"

	"github.com/arborcap/tablescout/pkg/tablescout/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is an immutable cell snapshot of a single worksheet.
type Sheet struct {
	name  string
	index int
	cells [][]models.Cell
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Index returns the 0-based position of the sheet in the workbook.
func (s *Sheet) Index() int { return s.index }

// Cell returns the snapshot cell at (row, col), 0-based. Positions
// outside the populated area yield an empty cell rather than an error,
// so scans may safely run past the edge of the data.
func (s *Sheet) Cell(row, col int) models.Cell {
	if row < 0 || col < 0 || row >= len(s.cells) || col >= len(s.cells[row]) {
		return models.Cell{Row: row, Col: col}
	}
	return s.cells[row][col]
}

// Search returns the first cell, in row-major order, whose text
// contains the given text (case-insensitive).
func (s *Sheet) Search(text string) (models.Cell, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return models.Cell{}, false
	}
	for _, row := range s.cells {
		for _, cell := range row {
			if cell.Text == "" {
				continue
			}
			if strings.Contains(strings.ToLower(cell.Text), needle) {
				return cell, true
			}
		}
	}
	return models.Cell{}, false
}

// snapshotSheet reads every cell of the named sheet into an immutable
// snapshot: trimmed text, parsed numeric value, formula presence, and
// background fill color. The snapshot covers the declared sheet
// dimension, not just value-bearing cells, so styled-but-blank header
// banner cells are captured too.
func snapshotSheet(f *excelize.File, name string, index int) (*Sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

	nRows, nCols := len(rows), 0
	for _, row := range rows {
		if len(row) > nCols {
			nCols = len(row)
		}
	}
	if dim, err := f.GetSheetDimension(name); err == nil {
		if r, c, ok := dimensionEnd(dim); ok {
			if r > nRows {
				nRows = r
			}
			if c > nCols {
				nCols = c
			}
		}
	}

	s := &Sheet{name: name, index: index, cells: make([][]models.Cell, nRows)}
	colors := &styleColors{f: f, byID: make(map[int]*models.RGB)}
	for r := 0; r < nRows; r++ {
		line := make([]models.Cell, nCols)
		for c := 0; c < nCols; c++ {
			cell := models.Cell{Row: r, Col: c}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if r < len(rows) && c < len(rows[r]) {
				cell.Text = strings.TrimSpace(rows[r][c])
				cell.Number = parseNumber(cell.Text)
			}
			if formula, err := f.GetCellFormula(name, axis); err == nil && formula != "" {
				cell.HasFormula = true
			}
			cell.Color = colors.lookup(name, axis)
			line[c] = cell
		}
		s.cells[r] = line
	}
	return s, nil
}

// dimensionEnd parses the end coordinates out of a sheet dimension
// reference such as "A1:N40" (or a bare "A1").
func dimensionEnd(dim string) (rows, cols int, ok bool) {
	ref := dim
	if i := strings.IndexByte(dim, ':'); i >= 0 {
		ref = dim[i+1:]
	}
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(ref, "$", ""))
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// styleColors resolves cell fill colors, memoized by style ID. Cells
// whose fill cannot be resolved (theme colors, no fill) report nil,
// never an error.
type styleColors struct {
	f    *excelize.File
	byID map[int]*models.RGB
}

func (sc *styleColors) lookup(sheet, axis string) *models.RGB {
	id, err := sc.f.GetCellStyle(sheet, axis)
	if err != nil || id == 0 {
		return nil
	}
	if rgb, seen := sc.byID[id]; seen {
		return rgb
	}
	rgb := sc.resolve(id)
	sc.byID[id] = rgb
	return rgb
}

func (sc *styleColors) resolve(id int) *models.RGB {
	style, err := sc.f.GetStyle(id)
	if err != nil || style == nil {
		return nil
	}
	for _, col := range style.Fill.Color {
		if rgb := parseARGB(col); rgb != nil {
			return rgb
		}
	}
	return nil
}
