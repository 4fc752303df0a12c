package tabular

import "fmt"

// LayoutNotFoundError reports that no row inside the scan window satisfied
// the header heuristic. It is fatal for the sheet: nothing can be extracted.
type LayoutNotFoundError struct {
	Sheet    string
	ScanRows int
}

// Error implements the error interface
func (e *LayoutNotFoundError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("no header row with year labels found in the first %d rows of sheet %q", e.ScanRows, e.Sheet)
	}
	return fmt.Sprintf("no header row with year labels found in the first %d rows", e.ScanRows)
}

// NewLayoutNotFoundError creates a LayoutNotFoundError for the given sheet.
func NewLayoutNotFoundError(sheet string, scanRows int) *LayoutNotFoundError {
	return &LayoutNotFoundError{Sheet: sheet, ScanRows: scanRows}
}

// UnresolvedHierarchyError reports a data row whose top-level label could not
// be established even after forward-fill. The row is dropped; the run
// continues.
type UnresolvedHierarchyError struct {
	Row int
}

// Error implements the error interface
func (e *UnresolvedHierarchyError) Error() string {
	return fmt.Sprintf("row %d has no top-level hierarchy label after forward-fill", e.Row)
}
