package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listmatch",
			Name:      "searches_total",
			Help:      "Total number of listing searches",
		},
		[]string{"domain", "outcome"}, // outcome: exact / relaxed / fallback / empty
	)

	RelaxedCriteriaTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listmatch",
			Name:      "relaxed_criteria_total",
			Help:      "Criteria dropped by the relaxation planner",
		},
		[]string{"domain", "field"},
	)

	ListingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listmatch",
			Name:      "listing_cache_total",
			Help:      "Listing cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(RelaxedCriteriaTotal)
	prometheus.MustRegister(ListingCacheTotal)
	engineMetricsRegistered = true
}
