package algod

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type accountResponse struct {
	Amount uint64 `json:"amount"`
}

// Balance returns the account balance in micro-units.
func (c *Client) Balance(ctx context.Context, address string) (amount uint64, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("account", err, started)
	}()

	var resp accountResponse
	if err := c.getJSON(ctx, "/v2/accounts/"+url.PathEscape(address), &resp); err != nil {
		return 0, fmt.Errorf("get account %s: %w", address, err)
	}
	return resp.Amount, nil
}
