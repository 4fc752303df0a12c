// Package grid is the workbook boundary of the extraction pipeline: it opens
// an .xlsx file with excelize and delivers one worksheet as an untyped
// in-memory cell grid. All layout inference happens downstream in
// internal/tabular.
package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"odpcli/internal/tabular"
)

// Load opens the workbook at path and returns the rows of the chosen sheet
// plus the sheet name actually used.
//
// When sheet is non-empty it must exist. Otherwise candidates are tried in
// order, then every remaining sheet is probed for one whose first rows
// satisfy the header heuristic with at least minPeriods period columns, and
// as a last resort the first sheet wins so the caller's own layout detection
// can produce the diagnostic.
func Load(path, sheet string, candidates []string, minPeriods int) (tabular.Grid, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet != "" {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		return tabular.Grid(rows), sheet, nil
	}

	for _, name := range candidates {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 0 {
			return tabular.Grid(rows), name, nil
		}
	}

	// Probe every sheet for one that actually contains a tabular layout.
	names := f.GetSheetList()
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		g := tabular.Grid(rows)
		if _, err := tabular.DetectLayout(g, tabular.DetectOptions{Sheet: name, MinPeriods: minPeriods}); err == nil {
			return g, name, nil
		}
	}

	if len(names) == 0 {
		return nil, "", fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(names[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to read sheet %q: %w", names[0], err)
	}
	return tabular.Grid(rows), names[0], nil
}
