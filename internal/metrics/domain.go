package metrics

import "github.com/prometheus/client_golang/prometheus"

// Muhurat cache and index resync metrics.
var (
	MuhuratCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "panditseva",
			Name:      "muhurat_cache_total",
			Help:      "Muhurat cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "degraded"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "panditseva",
			Name:      "search_requests_total",
			Help:      "Total pandit search requests by outcome",
		},
		[]string{"kind", "status"}, // kind: search / autocomplete / nearby
	)

	ResyncRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "panditseva",
			Name:      "index_resync_runs_total",
			Help:      "Full index resync runs by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)

	ResyncDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "panditseva",
			Name:      "index_resync_documents_total",
			Help:      "Documents processed by full resync runs",
		},
		[]string{"result"}, // "success" / "failed"
	)

	ResyncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "panditseva",
			Name:      "index_resync_duration_seconds",
			Help:      "Full index resync duration in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)
)

var domainMetricsRegistered bool

// RegisterDomainMetrics registers cache, search and resync metrics.
// Must be called once from main.
func RegisterDomainMetrics() {
	if domainMetricsRegistered {
		return
	}
	prometheus.MustRegister(MuhuratCacheTotal)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(ResyncRunsTotal)
	prometheus.MustRegister(ResyncDocumentsTotal)
	prometheus.MustRegister(ResyncDuration)
	domainMetricsRegistered = true
}
