package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	locateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "locator",
		Name:      "locate_total",
		Help:      "Count of timestamp to height lookups.",
	}, []string{"status"})

	locateProbes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "locator",
		Name:      "probes",
		Help:      "Blocks inspected per lookup.",
		Buckets:   prometheus.LinearBuckets(0, 4, 12),
	})

	tallyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rewards",
		Name:      "tally_total",
		Help:      "Count of proposer tallies.",
	}, []string{"source", "status"})

	tallyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rewards",
		Name:      "tally_duration_seconds",
		Help:      "Duration of proposer tallies.",
		Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
	}, []string{"source", "status"})

	tallyFilledBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rewards",
		Name:      "filled_blocks_total",
		Help:      "Blocks fetched from the node because the store lacked them.",
	})
)

// Rewards tracks metrics for locating epochs and tallying proposers.
type Rewards struct{}

// NewRewards constructs a Rewards collector.
func NewRewards() *Rewards {
	return &Rewards{}
}

// ObserveLocate records one lookup and the blocks it inspected.
func (m Rewards) ObserveLocate(err error, probes int) {
	locateTotal.WithLabelValues(status(err)).Inc()
	locateProbes.Observe(float64(probes))
}

// ObserveTally records one tally from source.
func (m Rewards) ObserveTally(source string, err error, started time.Time) {
	s := status(err)
	tallyTotal.WithLabelValues(source, s).Inc()
	tallyDuration.WithLabelValues(source, s).Observe(time.Since(started).Seconds())
}

// ObserveFilled counts blocks fetched live during a tally.
func (m Rewards) ObserveFilled(n int) {
	tallyFilledBlocks.Add(float64(n))
}
