package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// MaxContiguousBlockHeight returns the highest h such that every height in
// 1..h is stored, or 0 when height 1 is missing.
func (r *Repository) MaxContiguousBlockHeight(ctx context.Context) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_contiguous_block_height", r.network, err, start)
	}()

	const query = `WITH data AS (
    SELECT
        height,
        row_number() OVER (ORDER BY height) AS rn
    FROM proposer_blocks
    WHERE network = ?
    GROUP BY height
)
SELECT coalesce(max(height), toUInt64(0)) AS max_contiguous_height
FROM data
WHERE rn = height`

	rows, err := r.conn.Query(ctx, query, string(r.network))
	if err != nil {
		return 0, fmt.Errorf("query max contiguous block height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var height uint64
	if !rows.Next() {
		err = fmt.Errorf("max contiguous block height not found")
		return 0, err
	}

	if err = rows.Scan(&height); err != nil {
		return 0, fmt.Errorf("scan max contiguous block height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max contiguous block height: %w", err)
	}

	return height, nil
}
