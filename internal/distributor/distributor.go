// Package distributor pays reward lines as atomic transfer groups and records
// each recipient's outcome so an interrupted run can resume.
package distributor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/algod"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-rewards/pkg/safe"
	"go.uber.org/zap"
)

// NoteMode selects the note attached to each transfer.
type NoteMode string

const (
	// NoteUserType attaches the msgpack object {"userType": ...}.
	NoteUserType NoteMode = "usertype"
	// NoteRaw attaches the reward line note verbatim.
	NoteRaw  NoteMode = "raw"
	NoteNone NoteMode = "none"
)

const (
	defaultConfirmRounds = 8
	defaultPause         = time.Second

	maxReasonLength = 40
)

// Config tunes a Distributor.
type Config struct {
	GroupSize int
	Note      NoteMode
	// ConfirmRounds is how many rounds to wait for a group to confirm.
	ConfirmRounds uint64
	// PauseEvery inserts Pause after that many transfers. Zero disables it.
	PauseEvery int
	Pause      time.Duration
	// DryRun builds and signs groups without submitting or logging them.
	DryRun bool
}

// Report totals a distribution run.
type Report struct {
	Groups       int
	Sent         int
	Failed       int
	Rejected     int
	Excluded     int
	Zero         int
	SentAmount   uint64
	FailedAmount uint64
}

// Distributor sends transfers from one sender.
type Distributor struct {
	ledger  Ledger
	signer  Signer
	success OutcomeLog
	failure OutcomeLog
	metrics Metrics
	cfg     Config
	sleep   clock.SleepFunc
	logger  *zap.Logger
}

func New(ledger Ledger, signer Signer, success, failure OutcomeLog, m Metrics, cfg Config, logger *zap.Logger) (*Distributor, error) {
	if ledger == nil || signer == nil {
		return nil, fmt.Errorf("%w: distributor ledger and signer are required", model.ErrConfiguration)
	}
	if success == nil || failure == nil {
		return nil, fmt.Errorf("%w: distributor outcome logs are required", model.ErrConfiguration)
	}
	if m == nil {
		return nil, errors.New("distributor metrics is required")
	}
	if cfg.GroupSize < 1 {
		cfg.GroupSize = 1
	}
	if cfg.GroupSize > algod.MaxGroupSize {
		return nil, fmt.Errorf("%w: group size %d exceeds %d", model.ErrConfiguration, cfg.GroupSize, algod.MaxGroupSize)
	}
	switch cfg.Note {
	case "":
		cfg.Note = NoteUserType
	case NoteUserType, NoteRaw, NoteNone:
	default:
		return nil, fmt.Errorf("%w: unknown note mode %q", model.ErrConfiguration, cfg.Note)
	}
	if cfg.ConfirmRounds == 0 {
		cfg.ConfirmRounds = defaultConfirmRounds
	}
	if cfg.PauseEvery < 0 {
		cfg.PauseEvery = 0
	}
	if cfg.Pause <= 0 {
		cfg.Pause = defaultPause
	}
	return &Distributor{
		ledger:  ledger,
		signer:  signer,
		success: success,
		failure: failure,
		metrics: m,
		cfg:     cfg,
		sleep:   clock.SleepWithContext,
		logger:  logger.With(zap.Stringer("sender", signer.Address())),
	}, nil
}

// Distribute filters records against exclude and submits the rest group by
// group. A failed group is logged and the run continues. Cancellation takes
// effect between groups; a group once started is submitted and logged.
func (d *Distributor) Distribute(ctx context.Context, records []model.TransferRecord, exclude model.AddressSet) (Report, error) {
	filtered := Filter(records, exclude, d.cfg.Note)
	report := Report{
		Rejected: len(filtered.Rejected),
		Excluded: filtered.Excluded,
		Zero:     filtered.Zero,
	}
	for _, r := range filtered.Rejected {
		d.logger.Warn("transfer rejected", zap.String("account", r.Account), zap.String("reason", r.Error))
	}
	if len(filtered.Rejected) > 0 && !d.cfg.DryRun {
		if err := d.failure.Append(filtered.Rejected...); err != nil {
			return report, fmt.Errorf("record rejected transfers: %w", err)
		}
	}
	d.metrics.ObserveTransfers(metrics.OutcomeRejected, len(filtered.Rejected), sumAmounts(filtered.Rejected))
	d.metrics.ObserveTransfers(metrics.OutcomeSkipped, filtered.Excluded+filtered.Zero, 0)

	d.logger.Info("distribution planned",
		zap.Int("input", len(records)),
		zap.Int("send", len(filtered.Send)),
		zap.Int("rejected", report.Rejected),
		zap.Int("excluded", report.Excluded),
		zap.Int("zero", report.Zero),
		zap.Int("group_size", d.cfg.GroupSize),
	)
	if len(filtered.Send) == 0 {
		return report, nil
	}
	d.preflight(ctx, filtered.Send)

	for i, group := range Chunk(filtered.Send, d.cfg.GroupSize) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		sentBefore := report.Sent + report.Failed

		if err := d.sendGroup(context.WithoutCancel(ctx), i, group, &report); err != nil {
			return report, err
		}

		sentAfter := report.Sent + report.Failed
		if d.cfg.PauseEvery > 0 && sentBefore/d.cfg.PauseEvery != sentAfter/d.cfg.PauseEvery {
			if err := d.sleep(ctx, d.cfg.Pause); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}

// sendGroup submits one group and records every member's outcome. Only an
// outcome log failure is returned.
func (d *Distributor) sendGroup(ctx context.Context, index int, group []model.TransferRecord, report *Report) error {
	started := time.Now()
	report.Groups++
	logger := d.logger.With(zap.Int("group", index), zap.Int("size", len(group)))

	txIDs, err := d.submit(ctx, group)
	d.metrics.ObserveGroup(err, started)
	amount := sumAmounts(group)

	if err != nil {
		reason := failureReason(err)
		failed := make([]model.TransferRecord, len(group))
		for i, r := range group {
			failed[i] = r.Failed(reason)
			logger.Warn("transfer failed", zap.String("account", r.Account), zap.Uint64("amount", r.TokenAmount), zap.Error(err))
		}
		report.Failed += len(group)
		report.FailedAmount += amount
		d.metrics.ObserveTransfers(metrics.OutcomeFailed, len(group), amount)
		if d.cfg.DryRun {
			return nil
		}
		if err := d.failure.Append(failed...); err != nil {
			return fmt.Errorf("record failed group %d: %w", index, err)
		}
		return nil
	}

	sent := make([]model.TransferRecord, len(group))
	for i, r := range group {
		sent[i] = r.Sent(txIDs[i])
		logger.Info("transfer sent", zap.String("account", r.Account), zap.Uint64("amount", r.TokenAmount), zap.String("tx_id", txIDs[i]))
	}
	report.Sent += len(group)
	report.SentAmount += amount
	d.metrics.ObserveTransfers(metrics.OutcomeSent, len(group), amount)
	if d.cfg.DryRun {
		return nil
	}
	if err := d.success.Append(sent...); err != nil {
		return fmt.Errorf("record sent group %d: %w", index, err)
	}
	return nil
}

// submit builds, signs and sends the group, then waits for confirmation. It
// returns the transaction id of each member.
func (d *Distributor) submit(ctx context.Context, group []model.TransferRecord) ([]string, error) {
	params, err := d.ledger.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	sender := d.signer.Address()
	txns := make([]*algod.PaymentTxn, len(group))
	for i, r := range group {
		receiver, err := algod.DecodeAddress(r.Account)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrValidation, err)
		}
		note, err := d.note(r)
		if err != nil {
			return nil, err
		}
		txns[i] = algod.NewPayment(params, sender, receiver, r.TokenAmount, note)
	}
	if err := algod.AssignGroupID(txns); err != nil {
		return nil, err
	}

	txIDs := make([]string, len(txns))
	var signed []byte
	for i, t := range txns {
		id, err := t.ID()
		if err != nil {
			return nil, err
		}
		txIDs[i] = id
		stx, err := d.signer.Sign(t)
		if err != nil {
			return nil, fmt.Errorf("sign transaction: %w", err)
		}
		signed = append(signed, stx...)
	}

	if d.cfg.DryRun {
		d.logger.Info("dry run, group not submitted", zap.Strings("tx_ids", txIDs))
		return txIDs, nil
	}

	if _, err := d.ledger.SendRawTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSubmission, err)
	}
	if _, err := d.ledger.WaitForConfirmation(ctx, txIDs[0], d.cfg.ConfirmRounds); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSubmission, err)
	}
	return txIDs, nil
}

func (d *Distributor) note(r model.TransferRecord) ([]byte, error) {
	switch d.cfg.Note {
	case NoteRaw:
		if r.Note == "" {
			return nil, nil
		}
		return []byte(r.Note), nil
	case NoteNone:
		return nil, nil
	default:
		return algod.UserTypeNote(r.UserType)
	}
}

// preflight warns when the sender cannot cover the run. It never blocks it.
func (d *Distributor) preflight(ctx context.Context, records []model.TransferRecord) {
	amounts := make([]uint64, 0, len(records)+1)
	for _, r := range records {
		amounts = append(amounts, r.TokenAmount)
	}
	n, err := safe.Uint64(len(records))
	if err != nil {
		d.logger.Warn("cannot total required balance", zap.Error(err))
		return
	}
	need, err := safe.Add(append(amounts, n*algod.FlatFee)...)
	if err != nil {
		d.logger.Warn("cannot total required balance", zap.Error(err))
		return
	}

	balance, err := d.ledger.Balance(ctx, d.signer.Address().String())
	if err != nil {
		d.logger.Warn("sender balance unavailable", zap.Error(err))
		return
	}
	if balance < need {
		d.logger.Warn("sender balance below total payout",
			zap.Uint64("balance", balance),
			zap.Uint64("required", need),
			zap.Uint64("shortfall", need-balance),
		)
		return
	}
	d.logger.Info("sender balance covers payout", zap.Uint64("balance", balance), zap.Uint64("required", need))
}

func failureReason(err error) string {
	var apiErr *algod.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	msg := err.Error()
	if len(msg) > maxReasonLength {
		msg = msg[:maxReasonLength]
	}
	return msg
}

func sumAmounts(records []model.TransferRecord) uint64 {
	var total uint64
	for _, r := range records {
		total += r.TokenAmount
	}
	return total
}
