// Package rewards counts proposers over an epoch and turns the counts and the
// node health snapshot into per-address payouts.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/retry"
	"github.com/goodnatureofminers/blockinsight7000-rewards/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	SourceStore = "store"
	SourceFeed  = "feed"

	defaultWorkers = 4
)

// Tallier builds tallies from the block store or from the statistics feed.
type Tallier struct {
	store   BlockStore
	writer  BlockWriter
	chain   ChainSource
	feed    StatisticsFeed
	metrics Metrics
	retry   retry.Policy
	workers int
	logger  *zap.Logger
}

// TallierOptions wires the optional collaborators of a Tallier.
type TallierOptions struct {
	Store   BlockStore
	Writer  BlockWriter
	Chain   ChainSource
	Feed    StatisticsFeed
	Retry   retry.Policy
	Workers int
}

func NewTallier(opts TallierOptions, metrics Metrics, logger *zap.Logger) (*Tallier, error) {
	if metrics == nil {
		return nil, errors.New("tally metrics is required")
	}
	if opts.Store == nil && opts.Feed == nil {
		return nil, fmt.Errorf("%w: tally needs a block store or a statistics feed", model.ErrConfiguration)
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	return &Tallier{
		store:   opts.Store,
		writer:  opts.Writer,
		chain:   opts.Chain,
		feed:    opts.Feed,
		metrics: metrics,
		retry:   opts.Retry,
		workers: opts.Workers,
		logger:  logger,
	}, nil
}

// Tally counts stored blocks in the epoch. Heights missing from the store are
// fetched from the chain and retried while the failure is transient. Fetched
// heights are written back when a Writer is configured.
func (t *Tallier) Tally(ctx context.Context, epoch model.EpochRange, blacklist model.AddressSet) (tally model.Tally, err error) {
	started := time.Now()
	defer func() {
		t.metrics.ObserveTally(SourceStore, err, started)
	}()

	if err := epoch.Validate(); err != nil {
		return model.Tally{}, fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	if t.store == nil {
		return model.Tally{}, fmt.Errorf("%w: no block store configured", model.ErrConfiguration)
	}

	blocks, err := t.store.BlocksInRange(ctx, epoch.StartHeight, epoch.EndHeight)
	if err != nil {
		return model.Tally{}, fmt.Errorf("read stored blocks: %w", err)
	}

	missing := missingHeights(epoch, blocks)
	if len(missing) > 0 {
		filled, err := t.fill(ctx, missing)
		if err != nil {
			return model.Tally{}, err
		}
		blocks = append(blocks, filled...)
	}

	return Count(epoch, blocks, blacklist), nil
}

func (t *Tallier) fill(ctx context.Context, heights []uint64) ([]model.BlockRecord, error) {
	if t.chain == nil {
		return nil, fmt.Errorf("%w: %d heights missing from the store and no chain source configured", model.ErrConfiguration, len(heights))
	}
	t.logger.Info("fetching blocks missing from the store",
		zap.Int("count", len(heights)),
		zap.Uint64("first", heights[0]),
		zap.Uint64("last", heights[len(heights)-1]),
	)

	blocks, err := workerpool.Map(ctx, t.workers, heights, func(ctx context.Context, h uint64) (model.BlockRecord, error) {
		var b model.BlockRecord
		policy := t.retry
		policy.OnRetry = func(attempt int, err error, wait time.Duration) {
			t.logger.Warn("fetch block failed, retrying",
				zap.Uint64("height", h),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}
		err := retry.Do(ctx, policy, func(ctx context.Context) error {
			var err error
			b, err = t.chain.Block(ctx, h)
			return retry.OnlyTransient(err)
		})
		if err != nil {
			return model.BlockRecord{}, fmt.Errorf("fetch block %d: %w", h, err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}

	if t.writer != nil {
		if err := t.writer.UpsertBlocks(context.WithoutCancel(ctx), blocks); err != nil {
			// The tally is still complete; the store catches up on a later run.
			t.logger.Warn("write back fetched blocks failed", zap.Error(err))
		}
	}
	t.metrics.ObserveFilled(len(blocks))
	return blocks, nil
}

func missingHeights(epoch model.EpochRange, blocks []model.BlockRecord) []uint64 {
	have := make(map[uint64]struct{}, len(blocks))
	for _, b := range blocks {
		have[b.Height] = struct{}{}
	}
	var out []uint64
	for h := epoch.StartHeight; h <= epoch.EndHeight; h++ {
		if _, ok := have[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}

// Count tallies the proposers of blocks inside the epoch. Each height counts
// once. Blacklisted proposers are left out and counted as skipped.
func Count(epoch model.EpochRange, blocks []model.BlockRecord, blacklist model.AddressSet) model.Tally {
	counts := make(map[string]uint64)
	seen := make(map[uint64]struct{}, len(blocks))
	tally := model.Tally{Range: epoch}

	for _, b := range blocks {
		if b.Height < epoch.StartHeight || b.Height > epoch.EndHeight {
			continue
		}
		if _, dup := seen[b.Height]; dup {
			continue
		}
		seen[b.Height] = struct{}{}

		if blacklist.Contains(b.Proposer) {
			tally.Skipped++
			continue
		}
		counts[b.Proposer]++
		tally.TotalBlocks++
	}

	tally.Entries = sortedEntries(counts)
	return tally
}

// TallyFromFeed builds a tally from the statistics feed. Proposers the feed
// does not list contribute nothing. The feed's health snapshot is returned
// alongside.
func (t *Tallier) TallyFromFeed(ctx context.Context, epoch model.EpochRange, blacklist model.AddressSet) (tally model.Tally, health model.HealthReport, err error) {
	started := time.Now()
	defer func() {
		t.metrics.ObserveTally(SourceFeed, err, started)
	}()

	if t.feed == nil {
		return model.Tally{}, model.HealthReport{}, fmt.Errorf("%w: no statistics feed configured", model.ErrConfiguration)
	}
	stats, err := t.feed.Statistics(ctx, epoch.StartTime, epoch.EndTime, blacklist.Sorted())
	if err != nil {
		return model.Tally{}, model.HealthReport{}, err
	}

	counts := make(map[string]uint64, len(stats.Entries))
	tally = model.Tally{Range: epoch}
	for _, e := range stats.Entries {
		if blacklist.Contains(e.Address) {
			tally.Skipped += e.BlockCount
			continue
		}
		counts[e.Address] += e.BlockCount
		tally.TotalBlocks += e.BlockCount
	}
	tally.Entries = sortedEntries(counts)

	if stats.BlockHeight > 0 && stats.BlockHeight < epoch.EndHeight {
		t.logger.Warn("statistics feed lags the epoch end",
			zap.Uint64("feed_height", stats.BlockHeight),
			zap.Uint64("epoch_end", epoch.EndHeight),
		)
	}
	return tally, stats.Health, nil
}

// sortedEntries orders by block count descending, then address.
func sortedEntries(counts map[string]uint64) []model.ProposerTallyEntry {
	out := make([]model.ProposerTallyEntry, 0, len(counts))
	for addr, n := range counts {
		out = append(out, model.ProposerTallyEntry{Address: addr, BlockCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BlockCount != out[j].BlockCount {
			return out[i].BlockCount > out[j].BlockCount
		}
		return out[i].Address < out[j].Address
	})
	return out
}
