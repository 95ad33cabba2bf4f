package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

// UpsertBlocks appends block rows in one batch. Replaying a height is safe:
// ReplacingMergeTree keeps a single row per (network, height).
func (r *Repository) UpsertBlocks(ctx context.Context, blocks []model.BlockRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_blocks", r.network, err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO proposer_blocks (
	network,
	height,
	proposer,
	timestamp
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(r.network),
			block.Height,
			block.Proposer,
			block.Timestamp.UTC(),
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
