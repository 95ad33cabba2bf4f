// Command epoch-calc resolves an epoch, tallies its proposers, computes the
// block and health rewards and writes the reward list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/blacklist"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/cli"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/csvio"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/feed"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/locator"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/retry"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/rewards"
	"go.uber.org/zap"
)

const (
	sourceStore = "store"
	sourceFeed  = "feed"
)

type config struct {
	cli.CommonOptions
	Node      cli.NodeOptions      `group:"Node options"`
	Store     cli.StoreOptions     `group:"Block store options"`
	Feed      cli.FeedOptions      `group:"Feed options"`
	Blacklist cli.BlacklistOptions `group:"Blacklist options"`

	Start        string  `short:"s" long:"start" required:"true" description:"epoch start as YYYY-MM-DD or block height"`
	End          string  `short:"e" long:"end" required:"true" description:"epoch end as YYYY-MM-DD or block height"`
	BlockReward  string  `short:"r" long:"block-reward" default:"0" description:"block reward pool in whole tokens"`
	HealthReward string  `long:"health-reward" default:"0" description:"health reward pool in whole tokens"`
	Output       string  `short:"f" long:"output" default:"epoch_rewards.csv" description:"reward list to write"`
	Source       string  `long:"source" default:"store" choice:"store" choice:"feed" description:"where block counts come from"`
	Rounding     string  `long:"rounding" default:"floor" choice:"floor" choice:"half-up" description:"micro-unit rounding; floor keeps the payout sum within the pools, half-up can exceed them by half a micro-unit per line"`
	MinScore     float64 `long:"min-health-score" default:"5.0" description:"lowest qualifying node health score"`
	MinVersion   string  `long:"min-node-version" default:"3.18.0" description:"lowest qualifying node version, empty to disable"`
	Workers      int     `long:"workers" default:"4" description:"concurrent fetches of blocks missing from the store"`
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
		logger.Fatal("epoch calculation failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := rewardParams(cfg)
	if err != nil {
		return err
	}
	start, err := locator.ParseBound(cfg.Start)
	if err != nil {
		return err
	}
	end, err := locator.ParseBound(cfg.End)
	if err != nil {
		return err
	}

	var feedClient *feed.Client
	if cfg.Feed.Enabled() {
		if feedClient, err = cfg.Feed.Client(); err != nil {
			return err
		}
	} else if cfg.Source == sourceFeed || cfg.Blacklist.Remote || params.HealthPool > 0 {
		return fmt.Errorf("%w: --feed-url is required for the feed source, the remote blacklist and health rewards", model.ErrConfiguration)
	}

	node, err := cfg.Node.Client(cfg.Network)
	if err != nil {
		return err
	}

	var loader *blacklist.Loader
	if feedClient != nil {
		loader = blacklist.NewLoader(feedClient, logger)
	} else {
		loader = blacklist.NewLoader(nil, logger)
	}
	excluded, err := loader.Load(ctx, cfg.Blacklist.Sources())
	if err != nil {
		return err
	}

	var store cli.Reader
	if cfg.Source == sourceStore {
		if store, err = cfg.Store.OpenReader(cfg.Network); err != nil {
			return fmt.Errorf("open block store: %w", err)
		}
		defer store.Close()
	}

	m := metrics.NewRewards()
	var cache locator.BlockCache
	if store != nil {
		cache = store
	}
	loc, err := locator.New(node, cache, m, retry.DefaultPolicy(), logger.Named("locator"))
	if err != nil {
		return err
	}
	epoch, err := loc.ResolveEpoch(ctx, start, end)
	if err != nil {
		return err
	}

	opts := rewards.TallierOptions{Chain: node, Retry: retry.DefaultPolicy(), Workers: cfg.Workers}
	if store != nil {
		opts.Store = store
		if w, ok := store.(rewards.BlockWriter); ok {
			opts.Writer = w
		}
	}
	if feedClient != nil {
		opts.Feed = feedClient
	}
	tallier, err := rewards.NewTallier(opts, m, logger.Named("tally"))
	if err != nil {
		return err
	}

	var (
		tally  model.Tally
		health model.HealthReport
	)
	switch cfg.Source {
	case sourceFeed:
		if tally, health, err = tallier.TallyFromFeed(ctx, epoch, excluded); err != nil {
			return err
		}
	default:
		if tally, err = tallier.Tally(ctx, epoch, excluded); err != nil {
			return err
		}
		if feedClient != nil {
			if health, err = feedClient.Health(ctx, epoch.EndTime, excluded.Sorted()); err != nil {
				return err
			}
		}
	}
	logger.Info("tallied epoch",
		zap.Uint64("start_height", epoch.StartHeight),
		zap.Uint64("end_height", epoch.EndHeight),
		zap.Int("proposers", len(tally.Entries)),
		zap.Uint64("blocks", tally.TotalBlocks),
		zap.Uint64("blacklisted_blocks", tally.Skipped),
	)

	result, err := rewards.Calculate(tally, health, excluded, params)
	if err != nil {
		return err
	}
	logger.Info("healthy nodes", zap.Stringer("count", result.HealthyNodes))
	result.Summary.Log(logger)

	if err := csvio.WriteRewardList(cfg.Output, result.Lines); err != nil {
		return err
	}
	logger.Info("wrote reward list", zap.String("file", cfg.Output), zap.Int("lines", len(result.Lines)))
	return nil
}

func rewardParams(cfg config) (rewards.Params, error) {
	blockPool, err := rewards.ParseTokens(cfg.BlockReward)
	if err != nil {
		return rewards.Params{}, err
	}
	healthPool, err := rewards.ParseTokens(cfg.HealthReward)
	if err != nil {
		return rewards.Params{}, err
	}
	return rewards.Params{
		BlockPool:  blockPool,
		HealthPool: healthPool,
		MinScore:   cfg.MinScore,
		MinVersion: cfg.MinVersion,
		Rounding:   rewards.Rounding(cfg.Rounding),
	}, nil
}
