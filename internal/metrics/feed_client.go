package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "feed_client",
		Name:      "operations_total",
		Help:      "Count of statistics and blacklist feed requests.",
	}, []string{"operation", "status"})
	feedRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "feed_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of feed requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// FeedClient tracks metrics for feed requests.
type FeedClient struct{}

func NewFeedClient() *FeedClient {
	return &FeedClient{}
}

// Observe records a single feed request outcome and duration.
func (FeedClient) Observe(operation string, err error, started time.Time) {
	s := status(err)
	feedRequestsTotal.WithLabelValues(operation, s).Inc()
	feedRequestDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
