package distributor

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/algod"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger submits transfers and reports on them.
	Ledger interface {
		SuggestedParams(ctx context.Context) (algod.SuggestedParams, error)
		SendRawTransaction(ctx context.Context, signed []byte) (string, error)
		WaitForConfirmation(ctx context.Context, txID string, rounds uint64) (uint64, error)
		Balance(ctx context.Context, address string) (uint64, error)
	}
	Signer interface {
		Address() algod.Address
		Sign(txn *algod.PaymentTxn) ([]byte, error)
	}
	// OutcomeLog durably records transfer outcomes.
	OutcomeLog interface {
		Append(records ...model.TransferRecord) error
	}
	Metrics interface {
		ObserveGroup(err error, started time.Time)
		ObserveTransfers(outcome string, n int, amount uint64)
	}
)
