// Command fetch runs one fetch-and-reconcile cycle against the dispatch feed
// and rewrites the persisted CSV and JSON files. Schedule it with cron or a
// systemd timer.
//
// Usage:
//
//	go run ./cmd/fetch [-dry-run]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocklandwatch/firewatch-tracker/internal/config"
	"github.com/rocklandwatch/firewatch-tracker/internal/feed"
	"github.com/rocklandwatch/firewatch-tracker/internal/observability"
	"github.com/rocklandwatch/firewatch-tracker/internal/pipeline"
	"github.com/rocklandwatch/firewatch-tracker/internal/store"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	st := store.New(cfg.CSVPath, cfg.JSONPath, logger)
	client := feed.NewClient(cfg.FeedURL, cfg.FetchTimeout, logger)
	runner := pipeline.New(client, st, cfg.Location, logger, metrics, *dryRun)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("fetch finished",
		"fetched", report.Fetched,
		"added", report.Added,
		"skipped", report.Skipped,
		"total", report.Total,
		"dry_run", report.DryRun,
	)
}
