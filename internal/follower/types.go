package follower

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ChainSource reads committed blocks from the ledger.
	ChainSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		Block(ctx context.Context, height uint64) (model.BlockRecord, error)
	}
	// BlockStore persists proposer blocks.
	BlockStore interface {
		MaxContiguousBlockHeight(ctx context.Context) (uint64, error)
		UpsertBlocks(ctx context.Context, blocks []model.BlockRecord) error
	}
	// Metrics records follower progress.
	Metrics interface {
		ObserveFetchHeights(err error, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
		SetHeights(stored, chain uint64)
	}
	// HeightFetcher discovers the next heights to store.
	HeightFetcher interface {
		Fetch(ctx context.Context) ([]uint64, error)
	}
	// BlockProcessor fetches and stores the given heights.
	BlockProcessor interface {
		Process(ctx context.Context, heights []uint64) error
	}
)
