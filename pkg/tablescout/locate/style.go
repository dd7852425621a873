package locate

import "github.com/arborcap/tablescout/pkg/tablescout/models"

// StyleFunc reports whether a cell is visually a table header cell.
// The inference engine takes this as a capability so alternate
// detection strategies (bold runs, named styles) can be substituted
// without touching the scan itself.
type StyleFunc func(models.Cell) bool

// StyleParams holds the color thresholds for header banner detection.
// The defaults are calibrated to the navy banner theme of the source
// workbooks; retune them for documents with a different palette.
type StyleParams struct {
	// MaxRed is the exclusive upper bound on the red component.
	MaxRed uint8
	// MaxGreen is the exclusive upper bound on the green component.
	MaxGreen uint8
	// MinBlue is the exclusive lower bound on the blue component.
	MinBlue uint8
}

// DefaultStyleParams returns thresholds matching the navy header theme.
func DefaultStyleParams() StyleParams {
	return StyleParams{MaxRed: 50, MaxGreen: 80, MinBlue: 50}
}

// NavyHeader returns a classifier that marks cells with a dark blue
// background fill as table header cells. Cells without resolvable
// color information are never header cells.
func NavyHeader(p StyleParams) StyleFunc {
	return func(c models.Cell) bool {
		if c.Color == nil {
			return false
		}
		return c.Color.R < p.MaxRed && c.Color.G < p.MaxGreen && c.Color.B > p.MinBlue
	}
}
