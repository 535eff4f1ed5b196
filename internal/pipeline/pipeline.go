// Package pipeline orchestrates the fetch-normalize-merge-write cycle.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
	"github.com/rocklandwatch/firewatch-tracker/internal/observability"
)

// Fetcher retrieves the current raw entries from the upstream feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.RawEntry, error)
}

// Store loads and atomically replaces the persisted incident set.
type Store interface {
	Load() ([]domain.Incident, error)
	Replace(incidents []domain.Incident) error
}

// Report summarizes one fetch-and-reconcile run.
type Report struct {
	Fetched    int  `json:"fetched"`    // raw entries received from the feed
	Normalized int  `json:"normalized"` // entries that passed normalization
	Skipped    int  `json:"skipped"`    // malformed entries dropped
	Added      int  `json:"added"`      // new incidents after deduplication
	Total      int  `json:"total"`      // persisted set size after the run
	DryRun     bool `json:"dry_run"`
}

// Runner drives one fetch-normalize-merge-write cycle per Run call.
// Concurrent Run calls are serialized; cross-process serialization is the
// scheduler's job.
type Runner struct {
	fetcher  Fetcher
	store    Store
	location *time.Location
	logger   *slog.Logger
	metrics  *observability.Metrics
	dryRun   bool

	mu sync.Mutex
}

// New creates a Runner with the given stages and observability. With dryRun
// set, Run reports what it would persist without writing.
func New(f Fetcher, s Store, loc *time.Location, logger *slog.Logger, metrics *observability.Metrics, dryRun bool) *Runner {
	return &Runner{
		fetcher:  f,
		store:    s,
		location: loc,
		logger:   logger,
		metrics:  metrics,
		dryRun:   dryRun,
	}
}

// Run executes one cycle and returns its Report. On a fetch or write failure
// the persisted files are left untouched and the error carries the sentinel
// of the failing stage.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	r.metrics.FetchRuns.Inc()

	entries, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.metrics.FetchErrors.Inc()
		return Report{}, err
	}
	r.metrics.EntriesFetched.Add(float64(len(entries)))

	report := Report{Fetched: len(entries), DryRun: r.dryRun}

	incoming := make([]domain.Incident, 0, len(entries))
	for _, raw := range entries {
		inc, err := domain.NormalizeEntry(raw, r.location)
		if err != nil {
			r.logger.Warn("skipping malformed entry", "error", err)
			r.metrics.EntriesMalformed.Inc()
			report.Skipped++
			continue
		}
		incoming = append(incoming, inc)
	}
	report.Normalized = len(incoming)

	existing, err := r.store.Load()
	if err != nil {
		r.metrics.FetchErrors.Inc()
		return Report{}, err
	}

	merged, added := domain.Merge(existing, incoming)
	report.Added = added
	report.Total = len(merged)

	if r.dryRun {
		r.logger.Info("dry run, not writing",
			"fetched", report.Fetched,
			"skipped", report.Skipped,
			"would_add", report.Added,
			"total", report.Total,
		)
		return report, nil
	}

	if err := r.store.Replace(merged); err != nil {
		r.metrics.FetchErrors.Inc()
		return Report{}, err
	}

	r.metrics.IncidentsAdded.Add(float64(added))
	r.updateStoreSize(merged)
	r.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	r.logger.Info("run complete",
		"fetched", report.Fetched,
		"normalized", report.Normalized,
		"skipped", report.Skipped,
		"added", report.Added,
		"total", report.Total,
	)
	return report, nil
}

// updateStoreSize resets the per-type gauge to reflect the current set.
func (r *Runner) updateStoreSize(incidents []domain.Incident) {
	r.metrics.StoreSize.Reset()
	for _, inc := range incidents {
		r.metrics.StoreSize.WithLabelValues(inc.IncidentType).Inc()
	}
}
