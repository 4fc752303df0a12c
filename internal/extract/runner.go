package extract

import (
	"context"
	"fmt"
	"log/slog"

	"odpcli/internal/grid"
	"odpcli/internal/tabular"
)

// Job describes one extraction run: which dataset, which workbook, where
// the long-format CSV goes.
type Job struct {
	Dataset    Dataset
	InputPath  string
	OutputPath string
	// Sheet overrides the dataset's sheet candidates when non-empty.
	Sheet string
	// NoTrim keeps footnote rows below the grand-total row.
	NoTrim bool
	// ScanRows overrides the header scan window when > 0.
	ScanRows int
}

// Summary reports what one run produced.
type Summary struct {
	Sheet     string
	HeaderRow int
	Depth     int
	Periods   int
	Rows      int
	Records   int
	Dropped   int
}

// Run executes the full pipeline for one workbook: load the sheet grid,
// detect the layout, resolve the hierarchy, unpivot, write the CSV. A
// layout failure is fatal and nothing is written; rows dropped for an
// unresolved hierarchy are reported in the summary, not as an error.
func Run(ctx context.Context, job Job, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	spec, ok := datasets[job.Dataset]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", job.Dataset)
	}

	g, sheet, err := grid.Load(job.InputPath, job.Sheet, spec.SheetCandidates, spec.MinPeriods)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "loaded worksheet",
		slog.String("input", job.InputPath),
		slog.String("sheet", sheet),
		slog.Int("rows", len(g)))

	layout, err := tabular.DetectLayout(g, tabular.DetectOptions{
		Sheet:      sheet,
		ScanRows:   job.ScanRows,
		MinPeriods: spec.MinPeriods,
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "detected layout",
		slog.Int("header_row", layout.HeaderRow),
		slog.Int("hierarchy_depth", layout.Depth),
		slog.Int("period_columns", len(layout.Periods)),
		slog.Bool("monthly", layout.HasMonths()))

	res := tabular.Resolve(g, layout, tabular.ResolveOptions{
		NoTrim: job.NoTrim,
		Logger: logger,
	})
	if res.Dropped > 0 {
		logger.WarnContext(ctx, "rows dropped for unresolved hierarchy",
			slog.Int("dropped", res.Dropped))
	}

	records := tabular.Unpivot(res.Rows, layout)

	// Records are materialized before the output file is created, so a
	// fatal failure never leaves a partial file behind.
	if err := WriteCSV(job.OutputPath, spec.LevelNames(layout.Depth), layout, records); err != nil {
		return nil, err
	}

	summary := &Summary{
		Sheet:     sheet,
		HeaderRow: layout.HeaderRow,
		Depth:     layout.Depth,
		Periods:   len(layout.Periods),
		Rows:      len(res.Rows),
		Records:   len(records),
		Dropped:   res.Dropped,
	}
	logger.InfoContext(ctx, "extraction complete",
		slog.String("output", job.OutputPath),
		slog.Int("resolved_rows", summary.Rows),
		slog.Int("records", summary.Records),
		slog.Int("dropped_rows", summary.Dropped))
	return summary, nil
}
