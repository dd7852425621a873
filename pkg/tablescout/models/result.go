package models

// Result is a successful table lookup: the sheet that contained the
// header text and the inferred table region on it.
type Result struct {
	// SheetIndex is the 0-based index of the matched sheet.
	SheetIndex int `json:"sheet_index"`
	// SheetName is the name of the matched sheet.
	SheetName string `json:"sheet_name"`
	// Region is the inferred table span.
	Region Region `json:"region"`
}
