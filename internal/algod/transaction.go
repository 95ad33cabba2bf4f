package algod

import (
	"bytes"
	"crypto/sha512"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// FlatFee is the per-transaction fee paid for reward transfers.
	FlatFee uint64 = 1000
	// ValidityWindow is the number of rounds a transfer stays valid.
	ValidityWindow uint64 = 1000
	// MaxGroupSize is the ledger limit on atomic group size.
	MaxGroupSize = 16
	// MaxNoteSize is the ledger limit on a transaction note.
	MaxNoteSize = 1024

	paymentType = "pay"
)

var (
	txnPrefix   = []byte("TX")
	groupPrefix = []byte("TG")
)

// PaymentTxn is a payment transaction in canonical field order.
type PaymentTxn struct {
	Amount      uint64 `msgpack:"amt,omitempty"`
	Fee         uint64 `msgpack:"fee,omitempty"`
	FirstValid  uint64 `msgpack:"fv,omitempty"`
	GenesisID   string `msgpack:"gen,omitempty"`
	GenesisHash []byte `msgpack:"gh,omitempty"`
	Group       []byte `msgpack:"grp,omitempty"`
	LastValid   uint64 `msgpack:"lv,omitempty"`
	Lease       []byte `msgpack:"lx,omitempty"`
	Note        []byte `msgpack:"note,omitempty"`
	Receiver    []byte `msgpack:"rcv,omitempty"`
	Sender      []byte `msgpack:"snd,omitempty"`
	Type        string `msgpack:"type"`
}

type signedTxn struct {
	Sig []byte      `msgpack:"sig"`
	Txn *PaymentTxn `msgpack:"txn"`
}

type txGroup struct {
	TxList [][]byte `msgpack:"txlist"`
}

// SuggestedParams are the network parameters needed to build a transaction.
type SuggestedParams struct {
	Fee         uint64
	MinFee      uint64
	GenesisID   string
	GenesisHash []byte
	LastRound   uint64
}

// NewPayment builds a payment of amount micro-units from sender to receiver.
// The lease is set to the receiver key so a receiver cannot be paid twice
// within one validity window.
func NewPayment(params SuggestedParams, sender, receiver Address, amount uint64, note []byte) *PaymentTxn {
	fee := FlatFee
	if params.MinFee > fee {
		fee = params.MinFee
	}
	return &PaymentTxn{
		Amount:      amount,
		Fee:         fee,
		FirstValid:  params.LastRound,
		GenesisID:   params.GenesisID,
		GenesisHash: append([]byte(nil), params.GenesisHash...),
		LastValid:   params.LastRound + ValidityWindow,
		Lease:       append([]byte(nil), receiver[:]...),
		Note:        note,
		Receiver:    append([]byte(nil), receiver[:]...),
		Sender:      append([]byte(nil), sender[:]...),
		Type:        paymentType,
	}
}

// ID returns the textual transaction id.
func (t *PaymentTxn) ID() (string, error) {
	raw, err := t.rawID()
	if err != nil {
		return "", err
	}
	return addressEncoding.EncodeToString(raw[:]), nil
}

func (t *PaymentTxn) rawID() ([32]byte, error) {
	msg, err := t.bytesToSign()
	if err != nil {
		return [32]byte{}, err
	}
	return sha512.Sum512_256(msg), nil
}

func (t *PaymentTxn) bytesToSign() ([]byte, error) {
	enc, err := encodeCanonical(t)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	return append(append([]byte(nil), txnPrefix...), enc...), nil
}

// AssignGroupID binds the transactions into one atomic group. Groups of one
// are left ungrouped.
func AssignGroupID(txns []*PaymentTxn) error {
	if len(txns) > MaxGroupSize {
		return fmt.Errorf("group of %d exceeds max size %d", len(txns), MaxGroupSize)
	}
	if len(txns) < 2 {
		return nil
	}
	group := txGroup{TxList: make([][]byte, 0, len(txns))}
	for _, t := range txns {
		t.Group = nil
		id, err := t.rawID()
		if err != nil {
			return err
		}
		group.TxList = append(group.TxList, id[:])
	}
	enc, err := encodeCanonical(group)
	if err != nil {
		return fmt.Errorf("encode group: %w", err)
	}
	sum := sha512.Sum512_256(append(append([]byte(nil), groupPrefix...), enc...))
	for _, t := range txns {
		t.Group = append([]byte(nil), sum[:]...)
	}
	return nil
}

// UserTypeNote encodes the {"userType": ...} object attached to reward
// transfers.
func UserTypeNote(userType string) ([]byte, error) {
	note, err := encodeCanonical(map[string]string{"userType": userType})
	if err != nil {
		return nil, fmt.Errorf("encode note: %w", err)
	}
	return note, nil
}

func encodeCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
