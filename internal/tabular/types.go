package tabular

// MaxDepth is the deepest hierarchy the ODP report family uses. Every source
// observed so far carries between one and four classification columns before
// the time-period columns.
const MaxDepth = 4

// Grid is the raw cell content of one worksheet, rows by columns, exactly as
// the workbook reader delivered it. Rows may be ragged; use At for access.
type Grid [][]string

// At returns the cell at (row, col) or the empty string when the coordinate
// falls outside the grid.
func (g Grid) At(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// PeriodColumn pairs a grid column index with its fully qualified period
// label, either a bare year ("2018") or year-month ("2018-01").
type PeriodColumn struct {
	Col   int
	Label string
}

// Layout describes where the real data lives inside a human-formatted grid.
type Layout struct {
	// HeaderRow is the index of the row carrying the year labels.
	HeaderRow int
	// Depth is the number of hierarchy label columns (1..MaxDepth).
	Depth int
	// FirstPeriodCol is the column index of the first time-period column.
	FirstPeriodCol int
	// Periods lists the time-period columns in grid order.
	Periods []PeriodColumn
	// FirstDataRow is the index of the first data row. For single-row headers
	// this is HeaderRow+1; for year/month header blocks it is the row below
	// the month row.
	FirstDataRow int
}

// HasMonths reports whether any period column is month-qualified.
func (l *Layout) HasMonths() bool {
	for _, p := range l.Periods {
		if len(p.Label) > 4 {
			return true
		}
	}
	return false
}

// ResolvedRow is one data row with its full hierarchical context
// reconstructed. Labels always has Layout.Depth entries; trailing entries may
// be empty for shallower branches. Values is parallel to Layout.Periods and
// keeps the raw cell text, normalization happens in the unpivot step.
type ResolvedRow struct {
	Labels    []string
	Subtotal  bool
	Values    []string
	SourceRow int
}

// Record is one (row, period) observation in long format, the terminal
// artifact of the pipeline. Month is 0 for year-only layouts.
type Record struct {
	Labels    []string
	TotalFlag bool
	Year      int
	Month     int
	Value     int
}
