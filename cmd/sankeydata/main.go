package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"odpcli/internal/config"
	"odpcli/internal/infrastructure"
	"odpcli/internal/sankey"
)

func main() {
	in := flag.String("in", "", "extracted CSV to read (required)")
	out := flag.String("out", "", "output JSON path (required)")
	stream := flag.String("stream", "", "stream label for the root node, e.g. tfw (required)")
	flag.Parse()

	if *in == "" || *out == "" || *stream == "" {
		fmt.Fprintln(os.Stderr, "-in, -out and -stream are all required")
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

	ctx := infrastructure.WithRunID(context.Background())
	logger.InfoContext(ctx, "building flow data",
		slog.String("stream", *stream),
		slog.String("input", *in),
		slog.String("output", *out))

	obs, err := sankey.ReadExtracted(*in)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read extracted CSV", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", *in, err)
		os.Exit(1)
	}

	flow, err := sankey.Build(obs, *stream)
	if err != nil {
		logger.ErrorContext(ctx, "flow validation failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "flow build failed: %v\n", err)
		os.Exit(1)
	}

	if err := sankey.WriteJSON(*out, flow); err != nil {
		logger.ErrorContext(ctx, "failed to write flow JSON", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "flow data complete",
		slog.Int("nodes", len(flow.Nodes)),
		slog.Int("links", len(flow.Links)))
	fmt.Printf("Saved JSON: %s (%d nodes, %d links)\n", *out, len(flow.Nodes), len(flow.Links))
}
