package algod

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"
)

type paramsResponse struct {
	Fee         uint64 `json:"fee"`
	MinFee      uint64 `json:"min-fee"`
	GenesisHash string `json:"genesis-hash"`
	GenesisID   string `json:"genesis-id"`
	LastRound   uint64 `json:"last-round"`
}

// SuggestedParams returns the parameters for building a transaction now.
func (c *Client) SuggestedParams(ctx context.Context) (params SuggestedParams, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("transaction_params", err, started)
	}()

	var resp paramsResponse
	if err := c.getJSON(ctx, "/v2/transactions/params", &resp); err != nil {
		return SuggestedParams{}, fmt.Errorf("get transaction params: %w", err)
	}
	gh, err := base64.StdEncoding.DecodeString(resp.GenesisHash)
	if err != nil {
		return SuggestedParams{}, fmt.Errorf("decode genesis hash: %w", err)
	}
	return SuggestedParams{
		Fee:         resp.Fee,
		MinFee:      resp.MinFee,
		GenesisID:   resp.GenesisID,
		GenesisHash: gh,
		LastRound:   resp.LastRound,
	}, nil
}
