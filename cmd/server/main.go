// Command server serves the incident listing API over the persisted store.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocklandwatch/firewatch-tracker/internal/config"
	"github.com/rocklandwatch/firewatch-tracker/internal/feed"
	"github.com/rocklandwatch/firewatch-tracker/internal/observability"
	"github.com/rocklandwatch/firewatch-tracker/internal/pipeline"
	"github.com/rocklandwatch/firewatch-tracker/internal/store"
	"github.com/rocklandwatch/firewatch-tracker/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	st := store.New(cfg.CSVPath, cfg.JSONPath, logger)
	client := feed.NewClient(cfg.FeedURL, cfg.FetchTimeout, logger)
	runner := pipeline.New(client, st, cfg.Location, logger, metrics, false)

	srv := web.New(cfg, st, runner, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
