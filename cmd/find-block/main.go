// Command find-block prints the first block at or after an instant.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/cli"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/locator"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/retry"
	"go.uber.org/zap"
)

type config struct {
	cli.CommonOptions
	Node  cli.NodeOptions  `group:"Node options"`
	Store cli.StoreOptions `group:"Block store options"`

	Time     string `short:"t" long:"time" required:"true" description:"instant as RFC 3339 or YYYY-MM-DD (UTC midnight)"`
	Lower    uint64 `long:"lower" default:"1" description:"lowest height to search"`
	UseStore bool   `long:"use-store" description:"answer probes from the block store when possible"`
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

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("find block failed", zap.Error(err))
	}
}

func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := clock.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is neither RFC 3339 nor a date", model.ErrConfiguration, s)
	}
	return t, nil
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	target, err := parseInstant(cfg.Time)
	if err != nil {
		return err
	}

	node, err := cfg.Node.Client(cfg.Network)
	if err != nil {
		return err
	}

	var cache locator.BlockCache
	if cfg.UseStore {
		store, err := cfg.Store.OpenReader(cfg.Network)
		if err != nil {
			return fmt.Errorf("open block store: %w", err)
		}
		defer store.Close()
		cache = store
	}

	loc, err := locator.New(node, cache, metrics.NewRewards(), retry.DefaultPolicy(), logger.Named("locator"))
	if err != nil {
		return err
	}

	height, err := loc.Locate(ctx, target, cfg.Lower)
	if err != nil {
		return err
	}
	tip, err := node.LatestHeight(ctx)
	if err != nil {
		return err
	}
	if height > tip {
		logger.Info("instant is after the chain tip", zap.Time("target", target), zap.Uint64("tip", tip))
		fmt.Println(height)
		return nil
	}

	block, err := node.Block(ctx, height)
	if err != nil {
		return err
	}
	logger.Info("found block",
		zap.Time("target", target),
		zap.Uint64("height", height),
		zap.Time("timestamp", block.Timestamp),
		zap.String("proposer", block.Proposer),
	)
	fmt.Println(height)
	return nil
}
