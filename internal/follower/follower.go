// Package follower keeps a BlockStore in step with the ledger, storing the
// proposer and timestamp of every height in order.
package follower

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/retry"
	"go.uber.org/zap"
)

// Options tunes a Service. Zero values select defaults.
type Options struct {
	// ChunkSize caps the heights fetched and stored per iteration.
	ChunkSize uint64
	// Workers is the number of concurrent block fetches within a chunk.
	Workers int
	// FetchTimeout bounds a single block fetch attempt.
	FetchTimeout time.Duration
	// SleepDuration is the idle wait at the chain tip and after failures.
	SleepDuration time.Duration
	// Retry spaces repeated attempts at one height.
	Retry *retry.Policy
}

// Service follows the chain tip and stores new blocks.
type Service struct {
	logger         *zap.Logger
	network        model.Network
	metrics        Metrics
	sleep          clock.SleepFunc
	sleepDuration  time.Duration
	heightFetcher  HeightFetcher
	blockProcessor BlockProcessor
	blockSignal    <-chan struct{}
	status         *statusTracker
}

// NewService builds a Service. blockSignal may be nil; when set, a value on
// it ends an idle wait early.
func NewService(
	store BlockStore,
	source ChainSource,
	metrics Metrics,
	network model.Network,
	logger *zap.Logger,
	blockSignal <-chan struct{},
	opts Options,
) (*Service, error) {
	if store == nil || source == nil {
		return nil, errors.New("follower store and source are required")
	}
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}
	logger = logger.With(zap.String("network", string(network)))

	if opts.ChunkSize == 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkerCount
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = fetchTimeout
	}
	if opts.SleepDuration <= 0 {
		opts.SleepDuration = sleepDuration
	}
	policy := retry.Fixed(opts.SleepDuration)
	if opts.Retry != nil {
		policy = *opts.Retry
	}

	status := newStatusTracker()
	return &Service{
		logger:        logger,
		network:       network,
		metrics:       metrics,
		sleep:         clock.SleepWithContext,
		sleepDuration: opts.SleepDuration,
		blockSignal:   blockSignal,
		status:        status,
		heightFetcher: &followerHeightFetcher{
			source:  source,
			store:   store,
			metrics: metrics,
			status:  status,
			limit:   opts.ChunkSize,
		},
		blockProcessor: &followerBlockProcessor{
			source:       source,
			store:        store,
			status:       status,
			workers:      opts.Workers,
			fetchTimeout: opts.FetchTimeout,
			retry:        policy,
			logger:       logger.Named("blockProcessor"),
		},
	}, nil
}

// Status returns the latest observed progress.
func (s *Service) Status() Status {
	return s.status.get()
}

// Run follows the chain until the context is canceled or an iteration fails
// with model.ErrConfiguration. Other failures are retried after a pause.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, model.ErrConfiguration) {
				return err
			}
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
			if sleepErr := s.sleep(ctx, s.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.heightFetcher.Fetch(ctx)
	s.metrics.ObserveFetchHeights(err, started)
	if err != nil {
		return err
	}

	if len(heights) == 0 {
		s.logger.Debug("reached chain tip, sleeping", zap.Duration("sleep", s.sleepDuration))
		return s.wait(ctx, s.sleepDuration)
	}

	started = time.Now()
	err = s.blockProcessor.Process(ctx, heights)
	s.metrics.ObserveProcessBatch(err, len(heights), started)
	return err
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}
	return clock.WaitOrSignal(ctx, d, s.blockSignal)
}
