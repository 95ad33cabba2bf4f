// Package locator maps wall-clock instants to block heights.
package locator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/retry"
	"go.uber.org/zap"
)

// Locator binary-searches block timestamps. Block timestamps are assumed
// non-decreasing in height.
type Locator struct {
	source  ChainSource
	cache   BlockCache
	metrics Metrics
	retry   retry.Policy
	logger  *zap.Logger
}

// New builds a Locator. cache may be nil.
func New(source ChainSource, cache BlockCache, metrics Metrics, policy retry.Policy, logger *zap.Logger) (*Locator, error) {
	if source == nil {
		return nil, errors.New("locator source is required")
	}
	if metrics == nil {
		return nil, errors.New("locator metrics is required")
	}
	return &Locator{
		source:  source,
		cache:   cache,
		metrics: metrics,
		retry:   policy,
		logger:  logger,
	}, nil
}

// Locate returns the earliest height at or above lower whose block timestamp
// is not before target. A result above the chain tip means the target is
// later than every block.
func (l *Locator) Locate(ctx context.Context, target time.Time, lower uint64) (uint64, error) {
	tip, err := l.tip(ctx)
	if err != nil {
		return 0, err
	}
	return l.locate(ctx, target, lower, tip)
}

func (l *Locator) locate(ctx context.Context, target time.Time, lower, tip uint64) (height uint64, err error) {
	probes := 0
	defer func() { l.metrics.ObserveLocate(err, probes) }()

	if lower == 0 {
		lower = 1
	}
	lo, hi := lower, tip
	for lo <= hi {
		mid := lo + (hi-lo)/2
		probes++
		b, err := l.block(ctx, mid)
		if err != nil {
			return 0, err
		}
		if b.Timestamp.Before(target) {
			lo = mid + 1
			continue
		}
		hi = mid - 1
	}

	l.logger.Debug("located block",
		zap.Time("target", target),
		zap.Uint64("height", lo),
		zap.Uint64("tip", tip),
		zap.Int("probes", probes),
	)
	return lo, nil
}

func (l *Locator) tip(ctx context.Context) (uint64, error) {
	var tip uint64
	err := retry.Do(ctx, l.withLogging("chain height", 0), func(ctx context.Context) error {
		h, err := l.source.LatestHeight(ctx)
		if err != nil {
			return retry.OnlyTransient(err)
		}
		tip = h
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("get chain height: %w", err)
	}
	return tip, nil
}

func (l *Locator) block(ctx context.Context, height uint64) (model.BlockRecord, error) {
	if l.cache != nil {
		b, found, err := l.cache.BlockByHeight(ctx, height)
		if err != nil {
			l.logger.Warn("block cache lookup failed", zap.Uint64("height", height), zap.Error(err))
		} else if found {
			return b, nil
		}
	}

	var block model.BlockRecord
	err := retry.Do(ctx, l.withLogging("block", height), func(ctx context.Context) error {
		b, err := l.source.Block(ctx, height)
		if err != nil {
			return retry.OnlyTransient(err)
		}
		block = b
		return nil
	})
	if err != nil {
		return model.BlockRecord{}, fmt.Errorf("fetch block %d: %w", height, err)
	}
	return block, nil
}

func (l *Locator) withLogging(what string, height uint64) retry.Policy {
	p := l.retry
	p.OnRetry = func(attempt int, err error, wait time.Duration) {
		l.logger.Warn("locator fetch failed, retrying",
			zap.String("what", what),
			zap.Uint64("height", height),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	return p
}
