package locator

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		Block(ctx context.Context, height uint64) (model.BlockRecord, error)
	}
	// BlockCache answers probes from already stored blocks.
	BlockCache interface {
		BlockByHeight(ctx context.Context, height uint64) (model.BlockRecord, bool, error)
	}
	Metrics interface {
		ObserveLocate(err error, probes int)
	}
)
