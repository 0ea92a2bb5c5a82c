package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records the outcome and latency of star ledger operations.
type LedgerMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	stars      *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_operations_total",
		Help: "Ledger operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_operation_duration_seconds",
		Help:    "Duration of ledger operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	stars := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_stars_moved_total",
		Help: "Absolute number of stars moved by successful ledger operations.",
	}, []string{"operation"})
	reg.MustRegister(operations, duration, stars)
	return &LedgerMetrics{
		operations: operations,
		duration:   duration,
		stars:      stars,
	}
}

// Observe records one finished operation.
func (l *LedgerMetrics) Observe(operation, outcome string, duration time.Duration) {
	if l == nil || l.operations == nil {
		return
	}
	operation = normalizeLabel(operation)
	l.operations.WithLabelValues(operation, normalizeLabel(outcome)).Inc()
	l.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// AddStarsMoved adds the absolute value of amount to the moved stars counter.
func (l *LedgerMetrics) AddStarsMoved(operation string, amount int64) {
	if l == nil || l.stars == nil {
		return
	}
	if amount < 0 {
		amount = -amount
	}
	l.stars.WithLabelValues(normalizeLabel(operation)).Add(float64(amount))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
