package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "node_client",
		Name:      "operations_total",
		Help:      "Count of node REST operations.",
	}, []string{"operation", "network", "status"})
	nodeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "node_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node REST operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// RPCClient tracks metrics for calls to the ledger node.
type RPCClient struct {
	network string
}

// NewRPCClient constructs a metrics collector for node calls.
func NewRPCClient(network model.Network) *RPCClient {
	return &RPCClient{network: orUnknown(network)}
}

// Observe records a single node call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	s := status(err)
	nodeRequestsTotal.WithLabelValues(operation, m.network, s).Inc()
	nodeRequestDuration.WithLabelValues(operation, m.network, s).Observe(time.Since(started).Seconds())
}
