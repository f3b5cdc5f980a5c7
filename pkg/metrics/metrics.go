package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	WarmUpMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmup_messages_consumed_total",
			Help: "Number of cache warm-up messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	WarmUpMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmup_messages_processed_total",
			Help: "Number of warm-up messages processed successfully",
		},
		[]string{"topic"},
	)
	WarmUpMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmup_messages_failed_total",
			Help: "Number of warm-up messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Result cache operations",
		},
		[]string{"tier", "op"}, // op: hit|miss|evicted|store|store_error|read_error
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of entries currently in the in-memory cache tier",
		},
	)
)

var (
	UpstreamQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_queries_total",
			Help: "Queries sent to the knowledge-graph endpoint",
		},
		[]string{"shape", "outcome"}, // outcome: ok|failed
	)
	UpstreamQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_query_duration_seconds",
			Help:    "Duration of knowledge-graph queries including result streaming",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"shape"},
	)
	UpstreamRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_rows_total",
			Help: "Result rows projected from the knowledge-graph endpoint",
		},
		[]string{"shape"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторный вызов ничего не делает.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			WarmUpMessagesConsumed, WarmUpMessagesProcessed, WarmUpMessagesFailed,
			CacheOps, CacheSize,
			UpstreamQueries, UpstreamQueryDuration, UpstreamRows,
		)
	})
}
