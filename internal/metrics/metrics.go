package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "effzins_calculations_total",
			Help: "Total number of rate calculations by outcome",
		},
		[]string{"outcome"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "effzins_calculation_duration_seconds",
			Help:    "Duration of rate calculation requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"outcome"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "effzins_cache_lookups_total",
			Help: "Total number of result cache lookups by result",
		},
		[]string{"result"},
	)

	HistoryWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "effzins_history_write_errors_total",
			Help: "Total number of calculations that could not be stored",
		},
	)
)

// ObserveCalculation records one finished calculation request.
func ObserveCalculation(outcome string, d time.Duration) {
	CalculationsTotal.WithLabelValues(outcome).Inc()
	CalculationDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveCacheLookup records the result of one cache lookup.
func ObserveCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}
