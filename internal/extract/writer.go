package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"odpcli/internal/tabular"
)

// WriteCSV serializes the record stream as RFC-4180 comma-separated text
// with a header row: one column per hierarchy level, then total_flag, year,
// month (only for monthly layouts) and value.
func WriteCSV(path string, levelNames []string, layout *tabular.Layout, records []tabular.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	hasMonth := layout.HasMonths()

	header := append([]string{}, levelNames...)
	header = append(header, "total_flag", "year")
	if hasMonth {
		header = append(header, "month")
	}
	header = append(header, "value")
	if err := writer.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, rec := range records {
		row = row[:0]
		row = append(row, rec.Labels...)
		row = append(row, strconv.FormatBool(rec.TotalFlag), strconv.Itoa(rec.Year))
		if hasMonth {
			row = append(row, fmt.Sprintf("%02d", rec.Month))
		}
		row = append(row, strconv.Itoa(rec.Value))
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
