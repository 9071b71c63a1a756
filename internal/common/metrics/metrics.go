// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuoteCalculationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_calculations_completed_total",
			Help: "Total number of quote calculations completed",
		},
		[]string{"operation"},
	)

	QuoteCalculationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_calculations_failed_total",
			Help: "Total number of quote calculations failed",
		},
		[]string{"operation", "error_code"},
	)

	QuoteCalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "quote_calculation_duration_seconds",
			Help: "Duration of quote calculation in seconds",
		},
		[]string{"operation"},
	)

	RecomputeEditsDebounced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recompute_edits_debounced_total",
			Help: "Edits collapsed into a later recompute by the debounce window",
		},
	)

	RecomputeStaleDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recompute_stale_results_discarded_total",
			Help: "In-flight computation results discarded because newer input arrived",
		},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Product catalog cache hits and misses",
		},
		[]string{"result"},
	)
)
