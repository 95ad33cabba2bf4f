package follower

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/retry"
	"github.com/goodnatureofminers/blockinsight7000-rewards/pkg/workerpool"
	"go.uber.org/zap"
)

type followerBlockProcessor struct {
	source       ChainSource
	store        BlockStore
	status       *statusTracker
	workers      int
	fetchTimeout time.Duration
	retry        retry.Policy
	logger       *zap.Logger
}

// Process fetches heights concurrently, retrying each until it succeeds, and
// stores the chunk in a single ordered write. A canceled context stops
// fetching but never interrupts the write.
func (p *followerBlockProcessor) Process(ctx context.Context, heights []uint64) error {
	if len(heights) == 0 {
		return nil
	}

	blocks, err := workerpool.Map(ctx, p.workers, heights, p.fetch)
	if err != nil {
		return err
	}

	if err := p.store.UpsertBlocks(context.WithoutCancel(ctx), blocks); err != nil {
		return fmt.Errorf("store blocks %d-%d: %w", heights[0], heights[len(heights)-1], err)
	}
	last := blocks[len(blocks)-1]
	p.status.setStored(last.Height)
	p.logger.Info("stored blocks",
		zap.Uint64("from", heights[0]),
		zap.Uint64("to", last.Height),
		zap.String("last_proposer", last.Proposer),
		zap.Time("last_timestamp", last.Timestamp),
	)
	return nil
}

func (p *followerBlockProcessor) fetch(ctx context.Context, height uint64) (model.BlockRecord, error) {
	var block model.BlockRecord
	policy := p.retry
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		p.logger.Warn("fetch block failed, retrying",
			zap.Uint64("height", height),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()

		b, err := p.source.Block(fetchCtx, height)
		if err != nil {
			return retry.OnlyTransient(err)
		}
		if b.Height != height {
			return retry.OnlyTransient(fmt.Errorf("node returned block %d for height %d", b.Height, height))
		}
		block = b
		return nil
	})
	if err != nil {
		return model.BlockRecord{}, fmt.Errorf("fetch block %d: %w", height, err)
	}
	return block, nil
}
