package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedRequests counts public feed list requests, split by whether the
	// request carried a search or ordering filter.
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_feed_requests_total",
		Help: "Total number of public feed requests by filter usage",
	}, []string{"filtered"})

	// LikeConflicts counts like attempts rejected by the uniqueness constraint.
	LikeConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_like_conflicts_total",
		Help: "Total number of duplicate like attempts rejected",
	})

	// ImageProcessingDuration records image normalization latency by kind.
	ImageProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_image_processing_duration_seconds",
		Help:    "Image normalization duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// StartImageTimer returns a function that records image processing duration
// for the given kind when called (e.g. defer).
func StartImageTimer(kind string) func() {
	start := time.Now()
	return func() {
		ImageProcessingDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}
