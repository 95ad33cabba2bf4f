package follower

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

type followerHeightFetcher struct {
	source  ChainSource
	store   BlockStore
	metrics Metrics
	status  *statusTracker
	limit   uint64
}

// Fetch returns the heights in (stored, min(tip, stored+limit)] in ascending
// order, where stored is the top of the gap-free prefix of the store. Blocks
// written above a gap by other writers are fetched again and replayed.
func (f *followerHeightFetcher) Fetch(ctx context.Context) ([]uint64, error) {
	stored, err := f.store.MaxContiguousBlockHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stored height: %w", err)
	}
	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrTransientFetch) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %w", model.ErrConfiguration, err)
		}
		return nil, fmt.Errorf("get chain height: %w", err)
	}
	f.metrics.SetHeights(stored, latest)
	f.status.set(stored, latest)

	if latest <= stored {
		return nil, nil
	}
	end := latest
	if f.limit > 0 && end-stored > f.limit {
		end = stored + f.limit
	}

	heights := make([]uint64, 0, end-stored)
	for h := stored + 1; h <= end; h++ {
		heights = append(heights, h)
	}
	return heights, nil
}
