package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

// OutcomeLog appends transfer outcomes to a CSV file. The header is written
// only when the file is new, so reruns extend the same log.
type OutcomeLog struct {
	f      *os.File
	w      *csv.Writer
	extra  []string
	column string
}

// OpenSuccessLog opens a log whose last column is the transaction id.
func OpenSuccessLog(path string, extra []string) (*OutcomeLog, error) {
	return openOutcomeLog(path, extra, ColTxID)
}

// OpenErrorLog opens a log whose last column is the failure reason.
func OpenErrorLog(path string, extra []string) (*OutcomeLog, error) {
	return openOutcomeLog(path, extra, ColError)
}

func openOutcomeLog(path string, extra []string, column string) (*OutcomeLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open outcome log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat outcome log: %w", err)
	}

	l := &OutcomeLog{f: f, w: csv.NewWriter(f), extra: extra, column: column}
	if info.Size() == 0 {
		header := append(append(append([]string(nil), baseColumns...), extra...), column)
		if err := l.w.Write(header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write outcome log header: %w", err)
		}
		if err := l.sync(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return l, nil
}

// Append writes records and syncs them to disk before returning.
func (l *OutcomeLog) Append(records ...model.TransferRecord) error {
	for _, r := range records {
		row := make([]string, 0, len(baseColumns)+len(l.extra)+1)
		row = append(row, r.Account, r.UserType, strconv.FormatUint(r.TokenAmount, 10), r.Note)
		for _, name := range l.extra {
			row = append(row, r.Extra[name])
		}
		if l.column == ColTxID {
			row = append(row, r.TxID)
		} else {
			row = append(row, r.Error)
		}
		if err := l.w.Write(row); err != nil {
			return fmt.Errorf("write outcome %s: %w", r.Account, err)
		}
	}
	return l.sync()
}

func (l *OutcomeLog) sync() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("flush outcome log: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("sync outcome log: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *OutcomeLog) Close() error {
	if err := l.sync(); err != nil {
		_ = l.f.Close()
		return err
	}
	return l.f.Close()
}
