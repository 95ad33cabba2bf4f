package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockStoreRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_store",
		Name:      "operations_total",
		Help:      "Count of block store operations.",
	}, []string{"operation", "backend", "network", "status"})
	blockStoreRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of block store operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "backend", "network", "status"})
)

// BlockStore tracks metrics for block store operations of one backend.
type BlockStore struct {
	backend string
}

// NewBlockStore creates a BlockStore metrics collector for backend.
func NewBlockStore(backend string) *BlockStore {
	return &BlockStore{backend: orUnknown(backend)}
}

// Observe records duration and status of a store operation.
func (m BlockStore) Observe(operation string, network model.Network, err error, started time.Time) {
	s := status(err)
	n := orUnknown(network)
	blockStoreRequestsTotal.WithLabelValues(operation, m.backend, n, s).Inc()
	blockStoreRequestDuration.WithLabelValues(operation, m.backend, n, s).Observe(time.Since(started).Seconds())
}
