package algod

import (
	"context"
	"fmt"
	"time"
)

type nodeStatus struct {
	LastRound uint64 `json:"last-round"`
}

// LatestHeight returns the last round the node has committed.
func (c *Client) LatestHeight(ctx context.Context) (height uint64, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("status", err, started)
	}()

	var st nodeStatus
	if err := c.getJSON(ctx, "/v2/status", &st); err != nil {
		return 0, fmt.Errorf("get status: %w", err)
	}
	return st.LastRound, nil
}

// WaitForBlockAfter blocks until the node commits a round after round or its
// long poll window expires, and returns the node's last round.
func (c *Client) WaitForBlockAfter(ctx context.Context, round uint64) (height uint64, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("wait_for_block_after", err, started)
	}()

	var st nodeStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/v2/status/wait-for-block-after/%d", round), &st); err != nil {
		return 0, fmt.Errorf("wait for block after %d: %w", round, err)
	}
	return st.LastRound, nil
}
