package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据库查询延迟（秒）
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	DBSlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Total number of queries slower than the configured threshold",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success, invalid_credentials, error
	)

	TweetsPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tweets_posted_total",
			Help: "Total tweets successfully posted",
		},
	)

	FollowChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_changes_total",
			Help: "Follow and unfollow actions",
		},
		[]string{"action"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"routing_key", "status"},
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration 记录数据库查询延迟
func RecordDBQueryDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func IncrementSlowQuery() {
	DBSlowQueryCount.Inc()
}

func IncrementLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

func IncrementTweetsPosted() {
	TweetsPosted.Inc()
}

func IncrementFollowChange(action string) {
	FollowChanges.WithLabelValues(action).Inc()
}

func IncrementEventPublished(routingKey, status string) {
	EventsPublished.WithLabelValues(routingKey, status).Inc()
}
