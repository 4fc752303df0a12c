// Package aggregate combines the extracted per-dataset CSVs into one
// per-stream, per-year summary: detail rows only, values summed.
package aggregate

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// StreamSources maps the extracted CSV file names to their stream labels,
// in output order.
var StreamSources = []struct {
	File   string
	Stream string
}{
	{"extracted_asylum.csv", "asylum"},
	{"extracted_hc.csv", "hc"},
	{"extracted_tfw.csv", "tfw"},
	{"extracted_imp.csv", "imp"},
	{"extracted_pr.csv", "pr"},
	{"extracted_study.csv", "study"},
}

// StreamYear is one summary row.
type StreamYear struct {
	Stream string
	Year   int
	Value  int
}

// observation is one detail data point read back from an extracted CSV.
type observation struct {
	Stream    string
	Year      int
	Value     int
	TotalFlag bool
}

// CombineDir reads every known extracted CSV present in dir and returns the
// per-stream, per-year sums over detail rows. Missing files are skipped
// with a warning; an empty directory yields an empty result.
func CombineDir(dir string, logger *slog.Logger) ([]StreamYear, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var all []observation
	for _, src := range StreamSources {
		path := filepath.Join(dir, src.File)
		if _, err := os.Stat(path); err != nil {
			logger.Warn("extracted file not found, skipping",
				slog.String("file", path),
				slog.String("stream", src.Stream))
			continue
		}
		obs, err := readStream(path, src.Stream)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		logger.Info("loaded extracted stream",
			slog.String("stream", src.Stream),
			slog.Int("rows", len(obs)))
		all = append(all, obs...)
	}

	return summarize(all), nil
}

// readStream parses one extracted CSV, locating the year, value and
// total_flag columns by header name so hierarchy depth and the optional
// month column do not matter.
func readStream(path, stream string) ([]observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, required := range []string{"year", "value", "total_flag"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var obs []observation
	for _, row := range rows[1:] {
		year, err := strconv.Atoi(row[cols["year"]])
		if err != nil {
			return nil, fmt.Errorf("malformed year %q", row[cols["year"]])
		}
		value, err := strconv.Atoi(row[cols["value"]])
		if err != nil {
			return nil, fmt.Errorf("malformed value %q", row[cols["value"]])
		}
		total, err := strconv.ParseBool(row[cols["total_flag"]])
		if err != nil {
			return nil, fmt.Errorf("malformed total_flag %q", row[cols["total_flag"]])
		}
		obs = append(obs, observation{Stream: stream, Year: year, Value: value, TotalFlag: total})
	}
	return obs, nil
}

// summarize filters out subtotal rows, then groups by (stream, year) and
// sums the values. Output is sorted by stream then year.
func summarize(obs []observation) []StreamYear {
	type key struct {
		stream string
		year   int
	}
	sums := map[key]int{}
	for _, o := range obs {
		if o.TotalFlag {
			continue
		}
		sums[key{o.Stream, o.Year}] += o.Value
	}

	out := make([]StreamYear, 0, len(sums))
	for k, v := range sums {
		out = append(out, StreamYear{Stream: k.stream, Year: k.year, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stream != out[j].Stream {
			return out[i].Stream < out[j].Stream
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// WriteCSV serializes the summary as stream,year,value.
func WriteCSV(path string, rows []StreamYear) error {
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

	if err := writer.Write([]string{"stream", "year", "value"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Stream, strconv.Itoa(r.Year), strconv.Itoa(r.Value)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
