// Package extract copies an inferred table region into a fresh
// single-sheet workbook, so a downstream renderer sees the table and
// nothing else and no cropping is ever needed.
package extract

import (
	"github.com/arborcap/tablescout/pkg/tablescout/grid"
	"github.com/arborcap/tablescout/pkg/tablescout/models"
	"github.com/tiendc/go-deepcopy"
	"github.com/xuri/excelize/v2"
)

// OutputSheet is the sheet name of the workbook CopyRegion produces.
const OutputSheet = "Table"

// CopyRegion builds a new workbook containing only the given region of
// the source document, re-based to A1: cell values, cell styles,
// column widths, row heights, and merged ranges all carry over. The
// print area of the output sheet is set to the copied span so
// selection-based exporters render exactly the table.
func CopyRegion(doc *grid.Document, region models.Region) (*excelize.File, error) {
	src := doc.File()
	dst := excelize.NewFile()
	if err := dst.SetSheetName("Sheet1", OutputSheet); err != nil {
		dst.Close()
		return nil, err
	}

	cp := &regionCopier{
		src:      src,
		dst:      dst,
		sheet:    region.Sheet,
		region:   region,
		styleIDs: make(map[int]int),
	}
	for _, step := range []func() error{
		cp.copyCells,
		cp.copyColumnWidths,
		cp.copyRowHeights,
		cp.copyMerges,
		cp.setPrintArea,
	} {
		if err := step(); err != nil {
			dst.Close()
			return nil, err
		}
	}
	return dst, nil
}

// regionCopier carries the source/destination pair and the style ID
// translation table through the copy steps.
type regionCopier struct {
	src, dst *excelize.File
	sheet    string
	region   models.Region
	styleIDs map[int]int
}

func (cp *regionCopier) copyCells() error {
	for r := cp.region.StartRow; r <= cp.region.EndRow; r++ {
		for c := cp.region.StartCol; c <= cp.region.EndCol; c++ {
			srcAxis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			dstAxis, err := excelize.CoordinatesToCellName(c-cp.region.StartCol+1, r-cp.region.StartRow+1)
			if err != nil {
				return err
			}
			// Computed display values, not formulas: formulas referring
			// outside the region would break in the copy.
			if v, err := cp.src.GetCellValue(cp.sheet, srcAxis); err == nil && v != "" {
				if err := cp.dst.SetCellValue(OutputSheet, dstAxis, v); err != nil {
					return err
				}
			}
			if err := cp.copyStyle(srcAxis, dstAxis); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyStyle clones the source cell's style into the destination
// workbook. Style IDs are workbook-scoped, so each distinct source
// style is cloned once and reused.
func (cp *regionCopier) copyStyle(srcAxis, dstAxis string) error {
	id, err := cp.src.GetCellStyle(cp.sheet, srcAxis)
	if err != nil || id == 0 {
		return nil
	}
	dstID, ok := cp.styleIDs[id]
	if !ok {
		style, err := cp.src.GetStyle(id)
		if err != nil || style == nil {
			return nil
		}
		var clone excelize.Style
		if err := deepcopy.Copy(&clone, style); err != nil {
			return err
		}
		dstID, err = cp.dst.NewStyle(&clone)
		if err != nil {
			return err
		}
		cp.styleIDs[id] = dstID
	}
	return cp.dst.SetCellStyle(OutputSheet, dstAxis, dstAxis, dstID)
}

func (cp *regionCopier) copyColumnWidths() error {
	for c := cp.region.StartCol; c <= cp.region.EndCol; c++ {
		srcCol, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		dstCol, err := excelize.ColumnNumberToName(c - cp.region.StartCol + 1)
		if err != nil {
			return err
		}
		width, err := cp.src.GetColWidth(cp.sheet, srcCol)
		if err != nil {
			continue
		}
		if err := cp.dst.SetColWidth(OutputSheet, dstCol, dstCol, width); err != nil {
			return err
		}
	}
	return nil
}

func (cp *regionCopier) copyRowHeights() error {
	for r := cp.region.StartRow; r <= cp.region.EndRow; r++ {
		height, err := cp.src.GetRowHeight(cp.sheet, r+1)
		if err != nil {
			continue
		}
		if err := cp.dst.SetRowHeight(OutputSheet, r-cp.region.StartRow+1, height); err != nil {
			return err
		}
	}
	return nil
}

// copyMerges re-creates the source sheet's merged ranges that overlap
// the region, clamped to the region and re-based to the copy's origin.
func (cp *regionCopier) copyMerges() error {
	merges, err := cp.src.GetMergeCells(cp.sheet)
	if err != nil {
		return nil
	}
	for _, m := range merges {
		c1, r1, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			continue
		}
		c2, r2, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			continue
		}
		// 0-based, clamped to the region.
		top := max(r1-1, cp.region.StartRow)
		bottom := min(r2-1, cp.region.EndRow)
		left := max(c1-1, cp.region.StartCol)
		right := min(c2-1, cp.region.EndCol)
		if top > bottom || left > right {
			continue
		}
		start, err := excelize.CoordinatesToCellName(left-cp.region.StartCol+1, top-cp.region.StartRow+1)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(right-cp.region.StartCol+1, bottom-cp.region.StartRow+1)
		if err != nil {
			return err
		}
		if start == end {
			continue
		}
		if err := cp.dst.MergeCell(OutputSheet, start, end); err != nil {
			return err
		}
	}
	return nil
}

func (cp *regionCopier) setPrintArea() error {
	return SetPrintArea(cp.dst, OutputSheet, cp.region.Rows(), cp.region.Cols())
}
