package algod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

// ErrNoProposer is returned for blocks without a proposer certificate.
var ErrNoProposer = errors.New("block has no proposer")

type blockResponse struct {
	Block struct {
		Round     uint64 `msgpack:"rnd"`
		Timestamp int64  `msgpack:"ts"`
	} `msgpack:"block"`
	Cert struct {
		Prop struct {
			OriginalProposer []byte `msgpack:"oprop"`
		} `msgpack:"prop"`
	} `msgpack:"cert"`
}

// Block fetches the block at height and attributes it to its original proposer.
func (c *Client) Block(ctx context.Context, height uint64) (rec model.BlockRecord, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("block", err, started)
	}()

	var resp blockResponse
	if err := c.getMsgpack(ctx, fmt.Sprintf("/v2/blocks/%d", height), &resp); err != nil {
		return model.BlockRecord{}, fmt.Errorf("get block %d: %w", height, err)
	}

	prop := resp.Cert.Prop.OriginalProposer
	if len(prop) != len(Address{}) {
		return model.BlockRecord{}, fmt.Errorf("block %d: %w", height, ErrNoProposer)
	}
	var proposer Address
	copy(proposer[:], prop)

	round := resp.Block.Round
	if round == 0 {
		round = height
	}
	return model.BlockRecord{
		Height:    round,
		Proposer:  proposer.String(),
		Timestamp: time.Unix(resp.Block.Timestamp, 0).UTC(),
	}, nil
}
