package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/algod"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/blacklist"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/blockstore/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/blockstore/kv"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/blockstore/remote"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/feed"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

// Environment variables holding secrets.
const (
	EnvNodeToken  = "REWARDS_NODE_TOKEN"
	EnvFeedAPIKey = "REWARDS_FEED_API_KEY"
	EnvSenderKey  = "REWARDS_SENDER_KEY"
)

const (
	BackendKV         = "kv"
	BackendClickhouse = "clickhouse"
	BackendFollower   = "follower"
)

// CommonOptions are accepted by every binary.
type CommonOptions struct {
	Network model.Network `long:"network" env:"REWARDS_NETWORK" default:"mainnet" description:"ledger network name"`
	LogJSON bool          `long:"log-json" env:"REWARDS_LOG_JSON" description:"emit JSON logs"`
}

// NodeOptions configure the ledger node client. The API token is read from
// REWARDS_NODE_TOKEN.
type NodeOptions struct {
	URL     string        `long:"node-url" env:"REWARDS_NODE_URL" default:"https://mainnet-api.voi.nodely.dev" description:"ledger node REST URL"`
	RPS     int           `long:"node-rps" env:"REWARDS_NODE_RPS" default:"20" description:"max node requests per second, 0 for unlimited"`
	Timeout time.Duration `long:"node-timeout" env:"REWARDS_NODE_TIMEOUT" default:"30s" description:"node request timeout"`
}

// Client builds an instrumented node client.
func (o NodeOptions) Client(network model.Network) (*algod.Client, error) {
	c, err := algod.NewClient(algod.Config{
		URL:     o.URL,
		Token:   Secret(EnvNodeToken),
		RPS:     o.RPS,
		Timeout: o.Timeout,
	}, metrics.NewRPCClient(network))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	return c, nil
}

// StoreOptions select and locate the BlockStore. The kv backend is locked by
// one process at a time; while the block follower runs, other tools read
// through it with the follower backend.
type StoreOptions struct {
	Backend         string        `long:"store" env:"REWARDS_STORE" default:"kv" choice:"kv" choice:"clickhouse" choice:"follower" description:"block store backend; follower reads through a running block-follower"`
	DataDir         string        `long:"data-dir" env:"REWARDS_DATA_DIR" default:"data" description:"directory of the embedded block store"`
	ClickhouseDSN   string        `long:"clickhouse-dsn" env:"REWARDS_CLICKHOUSE_DSN" description:"ClickHouse DSN for the clickhouse backend"`
	FollowerURL     string        `long:"follower-url" env:"REWARDS_FOLLOWER_URL" default:"http://127.0.0.1:2112" description:"block-follower server for the follower backend"`
	FollowerTimeout time.Duration `long:"follower-timeout" env:"REWARDS_FOLLOWER_TIMEOUT" default:"30s" description:"block-follower request timeout"`
}

// Reader is a BlockStore opened for reading.
type Reader interface {
	BlocksInRange(ctx context.Context, from, to uint64) ([]model.BlockRecord, error)
	BlockByHeight(ctx context.Context, height uint64) (model.BlockRecord, bool, error)
	MaxContiguousBlockHeight(ctx context.Context) (uint64, error)
	Close() error
}

// Store is a BlockStore opened for writing.
type Store interface {
	Reader
	UpsertBlocks(ctx context.Context, blocks []model.BlockRecord) error
}

// KVPath is the embedded store file for network.
func (o StoreOptions) KVPath(network model.Network) string {
	return filepath.Join(o.DataDir, string(network), kv.DatabaseFileName)
}

// Open opens the configured backend for writing.
func (o StoreOptions) Open(network model.Network) (Store, error) {
	switch o.Backend {
	case "", BackendKV:
		s, err := kv.Open(o.KVPath(network), network, metrics.NewBlockStore(BackendKV))
		if errors.Is(err, kv.ErrLocked) {
			return nil, fmt.Errorf("%w: %w; while block-follower runs, use --store follower", model.ErrConfiguration, err)
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendClickhouse:
		r, err := clickhouse.NewRepository(o.ClickhouseDSN, network, metrics.NewBlockStore(BackendClickhouse))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrConfiguration, err)
		}
		return r, nil
	case BackendFollower:
		return nil, fmt.Errorf("%w: the follower backend is read-only", model.ErrConfiguration)
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", model.ErrConfiguration, o.Backend)
	}
}

// OpenReader opens the configured backend for reading. The result also
// implements UpsertBlocks unless it is the follower backend.
func (o StoreOptions) OpenReader(network model.Network) (Reader, error) {
	if o.Backend != BackendFollower {
		return o.Open(network)
	}
	c, err := remote.NewClient(remote.Config{
		URL:     o.FollowerURL,
		Timeout: o.FollowerTimeout,
	}, network, metrics.NewBlockStore(BackendFollower))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FeedOptions configure the statistics and blacklist feed. The API key is
// read from REWARDS_FEED_API_KEY.
type FeedOptions struct {
	StatisticsURL string        `long:"feed-url" env:"REWARDS_FEED_URL" description:"statistics, health and blacklist feed URL"`
	BallastURL    string        `long:"ballast-url" env:"REWARDS_BALLAST_URL" description:"consensus ballast feed URL"`
	Timeout       time.Duration `long:"feed-timeout" env:"REWARDS_FEED_TIMEOUT" default:"1m" description:"feed request timeout"`
}

// Enabled reports whether a feed URL was given.
func (o FeedOptions) Enabled() bool { return o.StatisticsURL != "" }

// Client builds an instrumented feed client.
func (o FeedOptions) Client() (*feed.Client, error) {
	return feed.NewClient(feed.Config{
		StatisticsURL: o.StatisticsURL,
		BallastURL:    o.BallastURL,
		APIKey:        Secret(EnvFeedAPIKey),
		Timeout:       o.Timeout,
	}, metrics.NewFeedClient())
}

// BlacklistOptions name the blacklist sources.
type BlacklistOptions struct {
	File     string `short:"b" long:"blacklist" env:"REWARDS_BLACKLIST_FILE" description:"CSV of blacklisted accounts"`
	Accounts string `long:"blacklist-accounts" env:"REWARDS_BLACKLIST" description:"comma separated blacklisted accounts"`
	Remote   bool   `long:"remote-blacklist" env:"REWARDS_REMOTE_BLACKLIST" description:"add the feed blacklist and ballast accounts"`
}

// Sources converts the options for blacklist.Loader.
func (o BlacklistOptions) Sources() blacklist.Sources {
	return blacklist.Sources{File: o.File, Inline: o.Accounts, Remote: o.Remote}
}
