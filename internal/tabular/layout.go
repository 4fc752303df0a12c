package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// defaultScanRows bounds the header search; the reports never bury the
	// header deeper than a dozen rows of title and note text.
	defaultScanRows = 12
	// monthRowWindow is how far below the year row a month row may sit
	// (directly below, or with a quarter row in between).
	monthRowWindow = 3
	// minMonthCells is the minimum count of month-abbreviation cells a row
	// must carry to qualify as the month header row.
	minMonthCells = 3

	yearMin = 1900
	yearMax = 2100
)

// DetectOptions tunes the header scan. The zero value gets sensible
// defaults.
type DetectOptions struct {
	// Sheet is only used in diagnostics.
	Sheet string
	// ScanRows bounds the top-down header search (default 12).
	ScanRows int
	// MinPeriods is the minimum number of period columns a header candidate
	// must yield (default 1).
	MinPeriods int
}

func (o DetectOptions) withDefaults() DetectOptions {
	if o.ScanRows <= 0 {
		o.ScanRows = defaultScanRows
	}
	if o.MinPeriods <= 0 {
		o.MinPeriods = 1
	}
	return o
}

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// parseYear reports whether a cleaned cell is a plausible report year.
func parseYear(s string) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil || y < yearMin || y > yearMax {
		return 0, false
	}
	return y, true
}

// parsePeriodCell accepts "YYYY" and "YYYY-MM" header cells.
func parsePeriodCell(raw string) (string, bool) {
	s := cleanCell(raw)
	if _, ok := parseYear(s); ok {
		return s, true
	}
	if y, m, err := ParsePeriod(s); err == nil && m > 0 && y >= yearMin && y <= yearMax {
		return fmt.Sprintf("%04d-%02d", y, m), true
	}
	return "", false
}

// parseMonthCell maps a month-abbreviation header cell ("Jan", "February")
// to its number. Quarter and subtotal columns do not match.
func parseMonthCell(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) < 3 {
		return 0, false
	}
	m, ok := monthNumbers[s[:3]]
	if !ok {
		return 0, false
	}
	// Reject tokens like "janvier-total"; month headers are single words.
	if strings.ContainsAny(s, " /") {
		return 0, false
	}
	return m, ok
}

// plausibleLabelHeader reports whether a cell left of the period columns can
// belong to a hierarchy-label header: empty (merged header remnants) or any
// non-numeric text such as "Province/Territory" or "Category".
func plausibleLabelHeader(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return true
	}
	if _, err := strconv.ParseFloat(cleanCell(s), 64); err == nil {
		return false
	}
	return true
}

// DetectLayout scans the grid top-down for the header row, the hierarchy
// column count and the period columns. The first row satisfying the
// heuristic wins. When a month header row sits below the year row (the
// Year/Quarter/Month report family), year labels are forward-filled across
// the header row and only true month columns are kept; quarterly and yearly
// subtotal columns are skipped.
func DetectLayout(grid Grid, opts DetectOptions) (*Layout, error) {
	opts = opts.withDefaults()

	scan := opts.ScanRows
	if scan > len(grid) {
		scan = len(grid)
	}

	for i := 0; i < scan; i++ {
		row := grid[i]

		firstPeriod := -1
		for c := range row {
			if _, ok := parsePeriodCell(row[c]); ok {
				firstPeriod = c
				break
			}
		}
		if firstPeriod < 1 || firstPeriod > MaxDepth {
			// No period cell, no label columns, or more label columns than
			// the report family ever has. Retry on the next row.
			continue
		}

		plausible := true
		for c := 0; c < firstPeriod; c++ {
			if !plausibleLabelHeader(row[c]) {
				plausible = false
				break
			}
		}
		if !plausible {
			continue
		}

		if layout, ok := detectMonthLayout(grid, i, firstPeriod, scan); ok {
			if len(layout.Periods) >= opts.MinPeriods {
				return layout, nil
			}
			continue
		}

		// Plain year columns: contiguous from the first period cell to the
		// last parsable header cell.
		var periods []PeriodColumn
		for c := firstPeriod; c < len(row); c++ {
			label, ok := parsePeriodCell(row[c])
			if !ok {
				break
			}
			periods = append(periods, PeriodColumn{Col: c, Label: label})
		}
		if len(periods) < opts.MinPeriods {
			continue
		}

		return &Layout{
			HeaderRow:      i,
			Depth:          firstPeriod,
			FirstPeriodCol: firstPeriod,
			Periods:        periods,
			FirstDataRow:   i + 1,
		}, nil
	}

	return nil, NewLayoutNotFoundError(opts.Sheet, opts.ScanRows)
}

// detectMonthLayout looks for a month header row below the year row and, if
// found, builds the month-qualified layout.
func detectMonthLayout(grid Grid, yearRow, firstPeriod, scan int) (*Layout, bool) {
	monthRow := -1
	for r := yearRow + 1; r <= yearRow+monthRowWindow && r < len(grid) && r < scan; r++ {
		n := 0
		for _, cell := range grid[r] {
			if _, ok := parseMonthCell(cell); ok {
				n++
			}
		}
		if n >= minMonthCells {
			monthRow = r
			break
		}
	}
	if monthRow < 0 {
		return nil, false
	}

	// Merged year cells surface as a value in the leftmost column of the
	// merge and blanks in the rest; forward-fill before pairing with months.
	width := len(grid[yearRow])
	if len(grid[monthRow]) > width {
		width = len(grid[monthRow])
	}

	var periods []PeriodColumn
	year, haveYear := 0, false
	for c := firstPeriod; c < width; c++ {
		if y, ok := parseYear(cleanCell(grid.At(yearRow, c))); ok {
			year, haveYear = y, true
		}
		m, ok := parseMonthCell(grid.At(monthRow, c))
		if !ok || !haveYear {
			continue
		}
		periods = append(periods, PeriodColumn{Col: c, Label: fmt.Sprintf("%04d-%02d", year, m)})
	}
	if len(periods) == 0 {
		return nil, false
	}

	return &Layout{
		HeaderRow:      yearRow,
		Depth:          firstPeriod,
		FirstPeriodCol: firstPeriod,
		Periods:        periods,
		FirstDataRow:   monthRow + 1,
	}, true
}
