// Command block-follower mirrors block proposers into the BlockStore and
// keeps following the chain tip. Its server also answers block reads for
// tools started with --store follower.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/algod"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/blockstore/remote"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/cli"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/follower"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/metrics"
	"go.uber.org/zap"
)

type config struct {
	cli.CommonOptions
	Node  cli.NodeOptions  `group:"Node options"`
	Store cli.StoreOptions `group:"Block store options"`

	MetricsAddr   string        `long:"metrics-addr" env:"REWARDS_METRICS_ADDR" default:":2112" description:"address serving /metrics, /status and block reads"`
	ChunkSize     uint64        `long:"chunk-size" env:"REWARDS_FOLLOWER_CHUNK_SIZE" default:"100" description:"heights fetched and stored per iteration"`
	Workers       int           `long:"workers" env:"REWARDS_FOLLOWER_WORKERS" default:"4" description:"concurrent block fetches"`
	FetchTimeout  time.Duration `long:"fetch-timeout" env:"REWARDS_FOLLOWER_FETCH_TIMEOUT" default:"5s" description:"timeout of one block fetch"`
	SleepDuration time.Duration `long:"sleep" env:"REWARDS_FOLLOWER_SLEEP" default:"10s" description:"idle and retry delay"`
	NoBlockSignal bool          `long:"no-block-signal" env:"REWARDS_FOLLOWER_NO_BLOCK_SIGNAL" description:"poll on a timer only"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ok, err := cli.Parse(&cfg, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !ok {
		return
	}

	logger := cli.MustLogger(cfg.LogJSON)
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("block follower failed", zap.Error(err))
	}
	logger.Info("block follower stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	store, err := cfg.Store.Open(cfg.Network)
	if err != nil {
		return fmt.Errorf("open block store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close block store", zap.Error(err))
		}
	}()

	node, err := cfg.Node.Client(cfg.Network)
	if err != nil {
		return fmt.Errorf("init node client: %w", err)
	}

	var blockSignal <-chan struct{}
	if !cfg.NoBlockSignal {
		blockSignal = algod.StartBlockSignal(ctx, node, cfg.SleepDuration, logger.Named("blockSignal"))
	}

	svc, err := follower.NewService(
		store,
		node,
		metrics.NewFollower(cfg.Network),
		cfg.Network,
		logger.Named("follower"),
		blockSignal,
		follower.Options{
			ChunkSize:     cfg.ChunkSize,
			Workers:       cfg.Workers,
			FetchTimeout:  cfg.FetchTimeout,
			SleepDuration: cfg.SleepDuration,
		},
	)
	if err != nil {
		return err
	}

	routes := remote.Routes(store, logger.Named("blockReads"))
	routes["/status"] = cli.JSONHandler(svc.Status)
	cli.StartServer(ctx, cfg.MetricsAddr, cli.NewMux(routes), logger)

	logger.Info("following chain",
		zap.String("network", string(cfg.Network)),
		zap.String("node", cfg.Node.URL),
		zap.String("store", cfg.Store.Backend),
	)
	return svc.Run(ctx)
}
