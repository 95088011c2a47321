// Package metrics provides Prometheus metrics for the portfolio API:
// HTTP traffic, content writes, bulk upserts, exports and seeding.
package metrics

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "portfolio"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Content metrics - writes made through the admin API
	ContentWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "writes_total",
			Help:      "Total number of content writes by resource and result",
		},
		[]string{"resource", "result"},
	)

	// Bulk metrics - natural-key upsert batches
	BulkRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bulk",
			Name:      "records_total",
			Help:      "Total number of bulk records by resource and result",
		},
		[]string{"resource", "result"},
	)

	BulkBatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bulk",
			Name:      "batch_duration_seconds",
			Help:      "Bulk upsert batch duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)

	// Export metrics - streamed exports
	ExportRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "records_total",
			Help:      "Total number of exported records by resource and format",
		},
		[]string{"resource", "format"},
	)

	// SeedRunsTotal counts bootstrap seeding attempts by outcome
	SeedRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "runs_total",
			Help:      "Total number of seeding runs by result (seeded, skipped, error)",
		},
		[]string{"result"},
	)
)

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveWrite records the outcome of a single content write
func ObserveWrite(resource string, err error) {
	ContentWritesTotal.WithLabelValues(resource, result(err)).Inc()
}

// ObserveBulk records a finished bulk batch. A failed batch counts all of
// its records as failures since nothing was applied.
func ObserveBulk(resource string, records int, err error, durationSeconds float64) {
	BulkBatchDuration.WithLabelValues(resource).Observe(durationSeconds)
	if records > 0 {
		BulkRecordsTotal.WithLabelValues(resource, result(err)).Add(float64(records))
	}
}

// ObserveExport records the number of streamed records
func ObserveExport(resource, format string, records int) {
	if records > 0 {
		ExportRecordsTotal.WithLabelValues(resource, format).Add(float64(records))
	}
}

// ObserveSeed records one seeding run
func ObserveSeed(seeded bool, err error) {
	switch {
	case err != nil:
		SeedRunsTotal.WithLabelValues("error").Inc()
	case seeded:
		SeedRunsTotal.WithLabelValues("seeded").Inc()
	default:
		SeedRunsTotal.WithLabelValues("skipped").Inc()
	}
}

// RegisterDBStats exposes connection pool statistics for db. Registering
// the same database name twice is a no-op.
func RegisterDBStats(db *sql.DB, name string) error {
	err := prometheus.Register(collectors.NewDBStatsCollector(db, name))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Seconds returns the elapsed time in seconds
func (t *Timer) Seconds() float64 {
	return time.Since(t.start).Seconds()
}
