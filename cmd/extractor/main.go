package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"odpcli/internal/config"
	"odpcli/internal/extract"
	"odpcli/internal/infrastructure"
	"odpcli/internal/tabular"
	"odpcli/internal/validation"
)

func main() {
	in := flag.String("in", "", "input .xlsx workbook (required)")
	out := flag.String("out", "", "output CSV path (required)")
	dataset := flag.String("dataset", "imp", "dataset family: "+strings.Join(extract.DatasetNames(), " | "))
	sheet := flag.String("sheet", "", "worksheet name (defaults per dataset, auto-detected otherwise)")
	noTrim := flag.Bool("no-trim", false, "keep footnote rows below the grand-total row")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "both -in and -out are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ds, err := extract.ParseDataset(*dataset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateWorkbook(*in); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := validator.ValidateOutputPath(*out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := infrastructure.WithRunID(context.Background())
	logger.InfoContext(ctx, "starting extraction",
		slog.String("dataset", string(ds)),
		slog.String("input", *in),
		slog.String("output", *out),
		slog.Bool("no_trim", *noTrim || cfg.Extract.NoTrim))

	fmt.Printf("Reading %s ...\n", *in)

	summary, err := extract.Run(ctx, extract.Job{
		Dataset:    ds,
		InputPath:  *in,
		OutputPath: *out,
		Sheet:      *sheet,
		NoTrim:     *noTrim || cfg.Extract.NoTrim,
		ScanRows:   cfg.Extract.ScanRows,
	}, logger)
	if err != nil {
		var lnf *tabular.LayoutNotFoundError
		if errors.As(err, &lnf) {
			logger.ErrorContext(ctx, "no usable header row on the designated sheet",
				slog.String("sheet", lnf.Sheet),
				slog.Int("scan_rows", lnf.ScanRows))
		} else {
			logger.ErrorContext(ctx, "extraction failed", slog.String("error", err.Error()))
		}
		fmt.Fprintf(os.Stderr, "extraction failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Detected %d hierarchy columns and %d period columns on sheet %q\n",
		summary.Depth, summary.Periods, summary.Sheet)
	fmt.Printf("Saved CSV: %s (%d records from %d rows)\n", *out, summary.Records, summary.Rows)
	if summary.Dropped > 0 {
		fmt.Printf("Dropped %d rows with unresolved hierarchy\n", summary.Dropped)
	}
}
