package rewards

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/feed"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockStore is the stored block history the tally reads.
	BlockStore interface {
		BlocksInRange(ctx context.Context, from, to uint64) ([]model.BlockRecord, error)
	}
	// BlockWriter receives heights the tally had to fetch from the chain.
	BlockWriter interface {
		UpsertBlocks(ctx context.Context, blocks []model.BlockRecord) error
	}
	// ChainSource fetches heights missing from the store.
	ChainSource interface {
		Block(ctx context.Context, height uint64) (model.BlockRecord, error)
	}
	// StatisticsFeed serves precomputed per-proposer counts.
	StatisticsFeed interface {
		Statistics(ctx context.Context, start, end time.Time, blacklist []string) (feed.Statistics, error)
	}
	Metrics interface {
		ObserveTally(source string, err error, started time.Time)
		ObserveFilled(n int)
	}
)
