package kv

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

type storedBlock struct {
	Proposer  string `msgpack:"p"`
	Timestamp int64  `msgpack:"t"`
}

func marshalBlock(b model.BlockRecord) ([]byte, error) {
	data, err := msgpack.Marshal(storedBlock{Proposer: b.Proposer, Timestamp: b.Timestamp.Unix()})
	if err != nil {
		return nil, fmt.Errorf("encode block %d: %w", b.Height, err)
	}
	return data, nil
}

func unmarshalBlock(network model.Network, height uint64, data []byte) (model.BlockRecord, error) {
	var sb storedBlock
	if err := msgpack.Unmarshal(data, &sb); err != nil {
		return model.BlockRecord{}, fmt.Errorf("decode block %d: %w", height, err)
	}
	return model.BlockRecord{
		Network:   network,
		Height:    height,
		Proposer:  sb.Proposer,
		Timestamp: time.Unix(sb.Timestamp, 0).UTC(),
	}, nil
}
