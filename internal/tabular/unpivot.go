package tabular

// Unpivot converts the resolved rows' wide period columns into one Record
// per (row, period), applying value normalization. Output preserves source
// row order, then period order within a row, so reruns over an unchanged
// grid diff clean. len(records) == len(rows) * len(layout.Periods).
func Unpivot(rows []ResolvedRow, layout *Layout) []Record {
	// Period labels come from DetectLayout and are always well-formed;
	// parse them once up front.
	years := make([]int, len(layout.Periods))
	months := make([]int, len(layout.Periods))
	for i, p := range layout.Periods {
		years[i], months[i], _ = ParsePeriod(p.Label)
	}

	records := make([]Record, 0, len(rows)*len(layout.Periods))
	for _, row := range rows {
		for i := range layout.Periods {
			var raw string
			if i < len(row.Values) {
				raw = row.Values[i]
			}
			records = append(records, Record{
				Labels:    row.Labels,
				TotalFlag: row.Subtotal,
				Year:      years[i],
				Month:     months[i],
				Value:     NormalizeValue(raw),
			})
		}
	}
	return records
}
