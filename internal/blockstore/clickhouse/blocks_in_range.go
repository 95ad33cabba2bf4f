package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

// BlocksInRange returns stored blocks with from <= height <= to, ordered by height.
func (r *Repository) BlocksInRange(ctx context.Context, from, to uint64) ([]model.BlockRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("blocks_in_range", r.network, err, start)
	}()

	if from > to {
		return nil, nil
	}

	const query = `
SELECT height, proposer, timestamp
FROM proposer_blocks FINAL
WHERE network = ? AND height BETWEEN ? AND ?
ORDER BY height`

	blocks, err := r.queryBlocks(ctx, query, string(r.network), from, to)
	if err != nil {
		return nil, fmt.Errorf("query blocks in range: %w", err)
	}
	return blocks, nil
}

// BlockByHeight returns the stored block at height and whether it exists.
func (r *Repository) BlockByHeight(ctx context.Context, height uint64) (model.BlockRecord, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_height", r.network, err, start)
	}()

	const query = `
SELECT height, proposer, timestamp
FROM proposer_blocks FINAL
WHERE network = ? AND height = ?`

	blocks, err := r.queryBlocks(ctx, query, string(r.network), height)
	if err != nil {
		return model.BlockRecord{}, false, fmt.Errorf("query block by height: %w", err)
	}
	if len(blocks) == 0 {
		return model.BlockRecord{}, false, nil
	}
	return blocks[0], true, nil
}

func (r *Repository) queryBlocks(ctx context.Context, query string, args ...any) (blocks []model.BlockRecord, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			b  model.BlockRecord
			ts time.Time
		)
		if err = rows.Scan(&b.Height, &b.Proposer, &ts); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		b.Network = r.network
		b.Timestamp = ts.UTC()
		blocks = append(blocks, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return blocks, nil
}
