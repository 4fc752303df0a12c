package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"odpcli/internal/aggregate"
	"odpcli/internal/config"
	"odpcli/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	dir := flag.String("dir", cfg.Paths.ProcessedDir, "directory holding the extracted_*.csv files")
	out := flag.String("out", "", "output CSV path (defaults to <dir>/extracted_agg.csv)")
	flag.Parse()

	if *out == "" {
		*out = filepath.Join(*dir, "extracted_agg.csv")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.WithRunID(context.Background())
	logger.InfoContext(ctx, "starting aggregation",
		slog.String("dir", *dir),
		slog.String("output", *out))

	fmt.Printf("Combining extracted files from %s ...\n", *dir)

	rows, err := aggregate.CombineDir(*dir, logger)
	if err != nil {
		logger.ErrorContext(ctx, "aggregation failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "aggregation failed: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "no extracted files found in %s\n", *dir)
		os.Exit(1)
	}

	if err := aggregate.WriteCSV(*out, rows); err != nil {
		logger.ErrorContext(ctx, "failed to write summary", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "aggregation complete", slog.Int("rows", len(rows)))
	fmt.Printf("Saved CSV: %s (%d stream-year rows)\n", *out, len(rows))
}
