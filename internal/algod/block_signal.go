package algod

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/clock"
	"go.uber.org/zap"
)

type roundWaiter interface {
	LatestHeight(ctx context.Context) (uint64, error)
	WaitForBlockAfter(ctx context.Context, round uint64) (uint64, error)
}

// StartBlockSignal long-polls the node and emits on the returned channel each
// time a new round is committed. Signals are coalesced; the goroutine exits
// when ctx ends.
func StartBlockSignal(ctx context.Context, node roundWaiter, retryDelay time.Duration, logger *zap.Logger) <-chan struct{} {
	notify := make(chan struct{}, 1)

	go func() {
		var (
			round  uint64
			primed bool
		)
		for ctx.Err() == nil {
			var err error
			if !primed {
				round, err = node.LatestHeight(ctx)
				primed = err == nil
			} else {
				var next uint64
				next, err = node.WaitForBlockAfter(ctx, round)
				if err == nil && next > round {
					round = next
					select {
					case notify <- struct{}{}:
					default:
					}
				}
			}
			if err != nil && ctx.Err() == nil {
				logger.Warn("block signal poll failed", zap.Error(err))
				_ = clock.SleepWithContext(ctx, retryDelay)
			}
		}
	}()

	return notify
}
