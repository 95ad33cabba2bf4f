// Package clickhouse is the BlockStore backed by a ClickHouse
// ReplacingMergeTree table, for deployments that share block data with
// analytics. Replayed heights collapse on merge; reads use FINAL.
package clickhouse

import (
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, network model.Network, err error, started time.Time)
	}
)

// Repository stores proposer blocks of one network.
type Repository struct {
	conn    clickhouse.Conn
	network model.Network
	metrics Metrics
}

// NewRepository opens a connection described by dsn.
func NewRepository(dsn string, network model.Network, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if network == "" {
		return nil, errors.New("network is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, network: network, metrics: metrics}, nil
}

// Close closes the connection pool.
func (r *Repository) Close() error {
	return r.conn.Close()
}
