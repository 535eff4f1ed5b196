package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// fetch pipeline and the listing API.
type Metrics struct {
	FetchRuns        prometheus.Counter
	FetchErrors      prometheus.Counter
	EntriesFetched   prometheus.Counter
	EntriesMalformed prometheus.Counter
	IncidentsAdded   prometheus.Counter
	FetchDuration    prometheus.Histogram

	StoreSize    *prometheus.GaugeVec   // label: incident_type
	HTTPRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all tracker metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "fetch_runs_total",
			Help:      "Total fetch-and-reconcile runs started.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "fetch_errors_total",
			Help:      "Total runs aborted by a fetch or write failure.",
		}),
		EntriesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "entries_fetched_total",
			Help:      "Total raw entries received from the feed.",
		}),
		EntriesMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "entries_malformed_total",
			Help:      "Total feed entries skipped because normalization failed.",
		}),
		IncidentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "incidents_added_total",
			Help:      "Total new incidents persisted after deduplication.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "firewatch",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-merge-write run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StoreSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "firewatch",
			Name:      "store_incidents",
			Help:      "Incidents currently persisted, by incident type.",
		}, []string{"incident_type"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "http_requests_total",
			Help:      "Listing API requests by route and status code.",
		}, []string{"route", "status"}),
	}

	prometheus.MustRegister(
		m.FetchRuns,
		m.FetchErrors,
		m.EntriesFetched,
		m.EntriesMalformed,
		m.IncidentsAdded,
		m.FetchDuration,
		m.StoreSize,
		m.HTTPRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRuns:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "fetch_runs_total"}),
		FetchErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "fetch_errors_total"}),
		EntriesFetched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "entries_fetched_total"}),
		EntriesMalformed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "entries_malformed_total"}),
		IncidentsAdded:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "incidents_added_total"}),
		FetchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "firewatch", Name: "fetch_duration_seconds"}),
		StoreSize:        prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "firewatch", Name: "store_incidents"}, []string{"incident_type"}),
		HTTPRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "firewatch", Name: "http_requests_total"}, []string{"route", "status"}),
	}
}
