// Package grid provides a read-only cell snapshot over an xlsx workbook.
package grid

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Document is a read-only view over an open workbook. Every sheet's
// cells are snapshotted at open time; later mutation of the underlying
// file is not reflected in the snapshot.
type Document struct {
	f      *excelize.File
	sheets []*Sheet
}

// Open loads the workbook at path and snapshots every sheet.
func Open(path string) (*Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return fromFile(f)
}

// OpenReader loads a workbook from r and snapshots every sheet.
func OpenReader(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return fromFile(f)
}

func fromFile(f *excelize.File) (*Document, error) {
	d := &Document{f: f}
	for i, name := range f.GetSheetList() {
		s, err := snapshotSheet(f, name, i)
		if err != nil {
			f.Close()
			return nil, err
		}
		d.sheets = append(d.sheets, s)
	}
	return d, nil
}

// File exposes the underlying workbook for collaborators that need
// style and layout detail beyond the snapshot.
func (d *Document) File() *excelize.File { return d.f }

// Close releases the underlying workbook.
func (d *Document) Close() error { return d.f.Close() }

// SheetCount returns the number of sheets in the workbook.
func (d *Document) SheetCount() int { return len(d.sheets) }

// Sheets returns all sheets in workbook order.
func (d *Document) Sheets() []*Sheet { return d.sheets }

// Sheet returns the sheet at index i, or nil when i is out of range.
func (d *Document) Sheet(i int) *Sheet {
	if i < 0 || i >= len(d.sheets) {
		return nil
	}
	return d.sheets[i]
}

// SheetByName returns the named sheet. Matching ignores case and
// surrounding whitespace, since sheet names in source workbooks often
// carry stray trailing spaces.
func (d *Document) SheetByName(name string) *Sheet {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range d.sheets {
		if strings.ToLower(strings.TrimSpace(s.name)) == want {
			return s
		}
	}
	return nil
}

// SheetNames returns all sheet names in workbook order.
func (d *Document) SheetNames() []string {
	names := make([]string, len(d.sheets))
	for i, s := range d.sheets {
		names[i] = s.name
	}
	return names
}
