package algod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrConfirmationTimeout is returned when a transaction is not confirmed in time.
var ErrConfirmationTimeout = errors.New("transaction not confirmed")

type sendResponse struct {
	TxID string `json:"txId"`
}

type pendingResponse struct {
	ConfirmedRound uint64 `json:"confirmed-round"`
	PoolError      string `json:"pool-error"`
}

// SendRawTransaction submits concatenated signed transactions and returns
// the id the node reports for the first of them.
func (c *Client) SendRawTransaction(ctx context.Context, signed []byte) (txID string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("send_transaction", err, started)
	}()

	data, err := c.do(ctx, http.MethodPost, "/v2/transactions", nil, signed, "application/x-binary")
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}
	var resp sendResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode send response: %w", err)
	}
	return resp.TxID, nil
}

// PendingTransaction returns the confirmed round (zero while pending) and the
// pool error for txID.
func (c *Client) PendingTransaction(ctx context.Context, txID string) (confirmed uint64, poolError string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("pending_transaction", err, started)
	}()

	var resp pendingResponse
	if err := c.getJSON(ctx, "/v2/transactions/pending/"+url.PathEscape(txID), &resp); err != nil {
		return 0, "", fmt.Errorf("get pending transaction %s: %w", txID, err)
	}
	return resp.ConfirmedRound, resp.PoolError, nil
}

// WaitForConfirmation polls txID each round until it is confirmed, rejected
// from the pool, or rounds have elapsed.
func (c *Client) WaitForConfirmation(ctx context.Context, txID string, rounds uint64) (uint64, error) {
	last, err := c.LatestHeight(ctx)
	if err != nil {
		return 0, err
	}
	deadline := last + rounds
	for current := last; current < deadline; {
		confirmed, poolErr, err := c.PendingTransaction(ctx, txID)
		if err != nil {
			return 0, err
		}
		if poolErr != "" {
			return 0, fmt.Errorf("transaction %s rejected: %s", txID, poolErr)
		}
		if confirmed > 0 {
			return confirmed, nil
		}
		next, err := c.WaitForBlockAfter(ctx, current)
		if err != nil {
			return 0, err
		}
		if next > current {
			current = next
		} else {
			current++
		}
	}
	return 0, fmt.Errorf("%w: %s after %d rounds", ErrConfirmationTimeout, txID, rounds)
}
