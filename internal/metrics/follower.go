package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerFetchHeightsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_follower",
		Name:      "fetch_heights_total",
		Help:      "Count of attempts to discover new heights.",
	}, []string{"network", "status"})

	followerFetchHeightsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_follower",
		Name:      "fetch_heights_duration_seconds",
		Help:      "Duration of discovering new heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	followerProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_follower",
		Name:      "process_batch_total",
		Help:      "Count of follower chunks processed.",
	}, []string{"network", "status"})

	followerProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_follower",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of fetching and storing a follower chunk.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"network", "status"})

	followerProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_follower",
		Name:      "process_batch_size",
		Help:      "Number of heights stored per follower chunk.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	followerHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "block_follower",
		Name:      "height",
		Help:      "Last known heights of the store and the chain.",
	}, []string{"network", "source"})
)

// Follower tracks metrics for the block follower.
type Follower struct {
	network string
}

// NewFollower constructs a Follower collector.
func NewFollower(network model.Network) *Follower {
	return &Follower{network: orUnknown(network)}
}

// ObserveFetchHeights records a height discovery outcome and duration.
func (m Follower) ObserveFetchHeights(err error, started time.Time) {
	s := status(err)
	followerFetchHeightsTotal.WithLabelValues(m.network, s).Inc()
	followerFetchHeightsDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a follower chunk.
func (m Follower) ObserveProcessBatch(err error, heights int, started time.Time) {
	s := status(err)
	followerProcessBatchTotal.WithLabelValues(m.network, s).Inc()
	followerProcessBatchDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	followerProcessBatchSize.WithLabelValues(m.network).Observe(float64(heights))
}

// SetHeights publishes the stored and chain tip heights.
func (m Follower) SetHeights(stored, chain uint64) {
	followerHeight.WithLabelValues(m.network, "store").Set(float64(stored))
	followerHeight.WithLabelValues(m.network, "chain").Set(float64(chain))
}
