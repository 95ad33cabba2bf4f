package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	distributorGroupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "distributor",
		Name:      "groups_total",
		Help:      "Count of transfer groups submitted.",
	}, []string{"status"})

	distributorGroupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "distributor",
		Name:      "group_duration_seconds",
		Help:      "Duration of building, submitting and confirming a group.",
		Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"status"})

	distributorTransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "distributor",
		Name:      "transfers_total",
		Help:      "Count of reward lines by outcome.",
	}, []string{"outcome"})

	distributorAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "distributor",
		Name:      "sent_amount_micro_total",
		Help:      "Sum of confirmed transfer amounts in micro-units.",
	})
)

// Distributor outcome labels.
const (
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
	OutcomeSkipped  = "skipped"
)

// Distributor tracks metrics for reward distribution.
type Distributor struct{}

// NewDistributor constructs a Distributor collector.
func NewDistributor() *Distributor {
	return &Distributor{}
}

// ObserveGroup records one submitted group.
func (m Distributor) ObserveGroup(err error, started time.Time) {
	s := status(err)
	distributorGroupsTotal.WithLabelValues(s).Inc()
	distributorGroupDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}

// ObserveTransfers counts n reward lines with the given outcome.
func (m Distributor) ObserveTransfers(outcome string, n int, amount uint64) {
	distributorTransfersTotal.WithLabelValues(outcome).Add(float64(n))
	if outcome == OutcomeSent {
		distributorAmountTotal.Add(float64(amount))
	}
}
