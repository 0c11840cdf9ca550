package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Tracker run metrics
	TrackerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_runs_total",
			Help: "Total number of tracker runs",
		},
		[]string{"status"},
	)

	TrackerRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_run_duration_seconds",
			Help:    "Tracker run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Reddit fetch metrics
	RedditFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reddit_fetches_total",
			Help: "Total number of search requests sent to reddit",
		},
		[]string{"status"},
	)

	RedditFetchRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reddit_fetch_retries_total",
			Help: "Total number of retried reddit requests",
		},
	)

	PostsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reddit_posts_fetched_total",
			Help: "Total number of posts returned by reddit searches",
		},
	)

	// History backend metrics
	HistoryRowsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_rows_appended_total",
			Help: "Total number of rows appended to the history log",
		},
		[]string{"backend"},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment).Set(1)
}
