// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "darkroom_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement kind.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "darkroom_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// LikeToggles counts like-toggle outcomes.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "darkroom_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})

	// CommentMutations counts comment create/delete operations.
	CommentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "darkroom_comment_mutations_total",
		Help: "Total number of comment mutations by kind",
	}, []string{"kind"})
)
