package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion and search Prometheus metrics.
var (
	IngestJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "ingest_jobs_total",
			Help:      "Total number of finished ingestion jobs",
		},
		[]string{"status"}, // "completed" / "failed"
	)

	IngestJobDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docdex",
			Name:      "ingest_job_duration_seconds",
			Help:      "Ingestion job duration in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	ChunksIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "chunks_indexed_total",
			Help:      "Total number of chunks written to the index",
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var ingestMetricsRegistered bool

// RegisterIngestMetrics registers Prometheus ingestion metrics. Must be called once from main.
func RegisterIngestMetrics() {
	if ingestMetricsRegistered {
		return
	}
	prometheus.MustRegister(IngestJobsTotal)
	prometheus.MustRegister(IngestJobDuration)
	prometheus.MustRegister(ChunksIndexedTotal)
	prometheus.MustRegister(SearchCacheTotal)
	ingestMetricsRegistered = true
}
