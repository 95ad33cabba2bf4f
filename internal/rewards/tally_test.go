package rewards

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/feed"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func blk(h uint64, proposer string) model.BlockRecord {
	return model.BlockRecord{Network: model.Mainnet, Height: h, Proposer: proposer, Timestamp: time.Unix(int64(h), 0).UTC()}
}

func blocksOf(start uint64, proposers ...string) []model.BlockRecord {
	out := make([]model.BlockRecord, 0, len(proposers))
	for i, p := range proposers {
		out = append(out, blk(start+uint64(i), p))
	}
	return out
}

func testPolicy() retry.Policy {
	p := retry.Fixed(time.Millisecond).WithSleep(func(context.Context, time.Duration) error { return nil })
	p.Attempts = 3
	return p
}

func TestCount(t *testing.T) {
	t.Parallel()

	epoch := model.EpochRange{StartHeight: 2, EndHeight: 6}
	blocks := append(blocksOf(1, "X", "A", "B", "A", "C", "A", "Y"), blk(3, "A"))

	got := Count(epoch, blocks, model.NewAddressSet("C"))
	assert.Equal(t, []model.ProposerTallyEntry{{Address: "A", BlockCount: 3}, {Address: "B", BlockCount: 1}}, got.Entries)
	assert.Equal(t, uint64(4), got.TotalBlocks)
	assert.Equal(t, uint64(1), got.Skipped)
	assert.Equal(t, epoch, got.Range)
}

func TestCount_Additive(t *testing.T) {
	t.Parallel()

	blocks := blocksOf(1, "A", "B", "A", "C", "B", "A", "D", "A", "B", "C")
	whole := Count(model.EpochRange{StartHeight: 1, EndHeight: 10}, blocks, nil).Counts()
	first := Count(model.EpochRange{StartHeight: 1, EndHeight: 4}, blocks, nil).Counts()
	second := Count(model.EpochRange{StartHeight: 5, EndHeight: 10}, blocks, nil).Counts()

	for addr, n := range whole {
		assert.Equal(t, n, first[addr]+second[addr], addr)
	}
}

func TestTallier_Tally(t *testing.T) {
	t.Parallel()

	epoch := model.EpochRange{StartHeight: 10, EndHeight: 14}
	tests := []struct {
		name     string
		noChain  bool
		noWriter bool
		prepare  func(store *MockBlockStore, writer *MockBlockWriter, chain *MockChainSource, metrics *MockMetrics)
		want     map[string]uint64
		wantErr  error
	}{
		{
			name: "complete store",
			prepare: func(store *MockBlockStore, _ *MockBlockWriter, _ *MockChainSource, metrics *MockMetrics) {
				store.EXPECT().BlocksInRange(gomock.Any(), uint64(10), uint64(14)).Return(blocksOf(10, "A", "B", "A", "A", "Z"), nil)
				metrics.EXPECT().ObserveTally(SourceStore, nil, gomock.Any())
			},
			want: map[string]uint64{"A": 3, "B": 1},
		},
		{
			name: "fills missing heights and writes them back",
			prepare: func(store *MockBlockStore, writer *MockBlockWriter, chain *MockChainSource, metrics *MockMetrics) {
				stored := []model.BlockRecord{blk(10, "A"), blk(11, "B"), blk(14, "A")}
				store.EXPECT().BlocksInRange(gomock.Any(), uint64(10), uint64(14)).Return(stored, nil)
				gomock.InOrder(
					chain.EXPECT().Block(gomock.Any(), uint64(12)).Return(model.BlockRecord{}, fmt.Errorf("%w: 503", model.ErrTransientFetch)),
					chain.EXPECT().Block(gomock.Any(), uint64(12)).Return(blk(12, "B"), nil),
				)
				chain.EXPECT().Block(gomock.Any(), uint64(13)).Return(blk(13, "C"), nil)
				writer.EXPECT().UpsertBlocks(gomock.Any(), []model.BlockRecord{blk(12, "B"), blk(13, "C")}).Return(nil)
				metrics.EXPECT().ObserveFilled(2)
				metrics.EXPECT().ObserveTally(SourceStore, nil, gomock.Any())
			},
			want: map[string]uint64{"A": 2, "B": 2, "C": 1},
		},
		{
			name: "write back failure keeps the tally",
			prepare: func(store *MockBlockStore, writer *MockBlockWriter, chain *MockChainSource, metrics *MockMetrics) {
				store.EXPECT().BlocksInRange(gomock.Any(), uint64(10), uint64(14)).Return(blocksOf(10, "A", "A", "A", "A"), nil)
				chain.EXPECT().Block(gomock.Any(), uint64(14)).Return(blk(14, "B"), nil)
				writer.EXPECT().UpsertBlocks(gomock.Any(), gomock.Any()).Return(errors.New("read only"))
				metrics.EXPECT().ObserveFilled(1)
				metrics.EXPECT().ObserveTally(SourceStore, nil, gomock.Any())
			},
			want: map[string]uint64{"A": 4, "B": 1},
		},
		{
			name:     "read-only store skips the write back",
			noWriter: true,
			prepare: func(store *MockBlockStore, _ *MockBlockWriter, chain *MockChainSource, metrics *MockMetrics) {
				store.EXPECT().BlocksInRange(gomock.Any(), uint64(10), uint64(14)).Return(blocksOf(10, "A", "A", "A", "A"), nil)
				chain.EXPECT().Block(gomock.Any(), uint64(14)).Return(blk(14, "B"), nil)
				metrics.EXPECT().ObserveFilled(1)
				metrics.EXPECT().ObserveTally(SourceStore, nil, gomock.Any())
			},
			want: map[string]uint64{"A": 4, "B": 1},
		},
		{
			name:    "missing heights without chain",
			noChain: true,
			prepare: func(store *MockBlockStore, _ *MockBlockWriter, _ *MockChainSource, metrics *MockMetrics) {
				store.EXPECT().BlocksInRange(gomock.Any(), uint64(10), uint64(14)).Return(nil, nil)
				metrics.EXPECT().ObserveTally(SourceStore, gomock.Any(), gomock.Any())
			},
			wantErr: model.ErrConfiguration,
		},
		{
			name: "unresolvable height",
			prepare: func(store *MockBlockStore, _ *MockBlockWriter, chain *MockChainSource, metrics *MockMetrics) {
				store.EXPECT().BlocksInRange(gomock.Any(), uint64(10), uint64(14)).Return(blocksOf(10, "A", "A", "A", "A"), nil)
				chain.EXPECT().Block(gomock.Any(), uint64(14)).Return(model.BlockRecord{}, model.ErrTransientFetch).Times(3)
				metrics.EXPECT().ObserveTally(SourceStore, gomock.Any(), gomock.Any())
			},
			wantErr: model.ErrTransientFetch,
		},
		{
			name: "rejected chain request is not retried",
			prepare: func(store *MockBlockStore, _ *MockBlockWriter, chain *MockChainSource, metrics *MockMetrics) {
				store.EXPECT().BlocksInRange(gomock.Any(), uint64(10), uint64(14)).Return(blocksOf(10, "A", "A", "A", "A"), nil)
				chain.EXPECT().Block(gomock.Any(), uint64(14)).Return(model.BlockRecord{}, errors.New("status 401")).Times(1)
				metrics.EXPECT().ObserveTally(SourceStore, gomock.Any(), gomock.Any())
			},
			wantErr: model.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			store := NewMockBlockStore(ctrl)
			writer := NewMockBlockWriter(ctrl)
			chain := NewMockChainSource(ctrl)
			metrics := NewMockMetrics(ctrl)
			tt.prepare(store, writer, chain, metrics)

			opts := TallierOptions{Store: store, Writer: writer, Chain: chain, Retry: testPolicy(), Workers: 2}
			if tt.noChain {
				opts.Chain = nil
			}
			if tt.noWriter {
				opts.Writer = nil
			}
			tallier, err := NewTallier(opts, metrics, zap.NewNop())
			require.NoError(t, err)

			got, err := tallier.Tally(context.Background(), epoch, model.NewAddressSet("Z"))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Counts())
		})
	}
}

func TestTallier_TallyFromFeed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	epoch := model.EpochRange{
		StartHeight: 1,
		EndHeight:   100,
		StartTime:   time.Date(2024, 3, 1, 0, 0, 1, 0, time.UTC),
		EndTime:     time.Date(2024, 3, 7, 23, 59, 58, 0, time.UTC),
	}
	health := model.HealthReport{HealthyNodeCount: 2, Addresses: map[string][]model.HealthRecord{"A": {node("a", 9, 1, "3.20.0")}}}

	feedClient := NewMockStatisticsFeed(ctrl)
	metrics := NewMockMetrics(ctrl)
	feedClient.EXPECT().Statistics(gomock.Any(), epoch.StartTime, epoch.EndTime, []string{"B"}).Return(feed.Statistics{
		Entries: []model.ProposerTallyEntry{
			{Address: "A", BlockCount: 60},
			{Address: "B", BlockCount: 30},
			{Address: "C", BlockCount: 10},
		},
		Health:      health,
		BlockHeight: 100,
	}, nil)
	metrics.EXPECT().ObserveTally(SourceFeed, nil, gomock.Any())

	tallier, err := NewTallier(TallierOptions{Feed: feedClient}, metrics, zap.NewNop())
	require.NoError(t, err)

	got, gotHealth, err := tallier.TallyFromFeed(context.Background(), epoch, model.NewAddressSet("B"))
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"A": 60, "C": 10}, got.Counts())
	assert.Equal(t, uint64(70), got.TotalBlocks)
	assert.Equal(t, uint64(30), got.Skipped)
	assert.Equal(t, health, gotHealth)
}

func TestNewTallier(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	_, err := NewTallier(TallierOptions{}, NewMockMetrics(ctrl), zap.NewNop())
	require.ErrorIs(t, err, model.ErrConfiguration)

	_, err = NewTallier(TallierOptions{Store: NewMockBlockStore(ctrl)}, nil, zap.NewNop())
	require.Error(t, err)
}
