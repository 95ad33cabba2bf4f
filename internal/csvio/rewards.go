// Package csvio reads and writes the reward list and the distribution
// outcome logs.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

// Reward list columns.
const (
	ColAccount     = "account"
	ColUserType    = "userType"
	ColTokenAmount = "tokenAmount"
	ColNote        = "note"
	ColTxID        = "txId"
	ColError       = "error"

	// NodeUserType tags reward lines produced for block proposers.
	NodeUserType = "node"
)

var baseColumns = []string{ColAccount, ColUserType, ColTokenAmount, ColNote}

// RewardList is a parsed reward list. Extra lists columns beyond the known
// ones in file order.
type RewardList struct {
	Records []model.TransferRecord
	Extra   []string
}

// WriteRewardList writes lines as a reward list, one row per line.
func WriteRewardList(path string, lines []model.RewardLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create reward list: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(baseColumns); err != nil {
		_ = f.Close()
		return fmt.Errorf("write reward list header: %w", err)
	}
	for _, l := range lines {
		row := []string{l.Address, NodeUserType, strconv.FormatUint(l.TokenAmount(), 10), l.Note}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("write reward line %s: %w", l.Address, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush reward list: %w", err)
	}
	return f.Close()
}

// ReadRewardList parses a reward list. The account and tokenAmount columns
// are required; a malformed amount is a configuration error.
func ReadRewardList(path string) (RewardList, error) {
	f, err := os.Open(path)
	if err != nil {
		return RewardList{}, fmt.Errorf("open reward list: %w: %w", model.ErrConfiguration, err)
	}
	defer f.Close()
	return readRewardList(f)
}

func readRewardList(r io.Reader) (RewardList, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return RewardList{}, fmt.Errorf("read reward list header: %w: %w", model.ErrConfiguration, err)
	}
	idx := make(map[string]int, len(header))
	var list RewardList
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		idx[h] = i
		if !isBaseColumn(h) && h != ColTxID && h != ColError {
			list.Extra = append(list.Extra, h)
		}
	}
	for _, required := range []string{ColAccount, ColTokenAmount} {
		if _, ok := idx[required]; !ok {
			return RewardList{}, fmt.Errorf("reward list column %q missing: %w", required, model.ErrConfiguration)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return RewardList{}, fmt.Errorf("read reward list line %d: %w: %w", line, model.ErrConfiguration, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		amount, err := strconv.ParseUint(field(row, ColTokenAmount), 10, 64)
		if err != nil {
			return RewardList{}, fmt.Errorf("reward list line %d token amount: %w: %w", line, model.ErrConfiguration, err)
		}
		rec := model.TransferRecord{
			Account:     field(row, ColAccount),
			UserType:    field(row, ColUserType),
			TokenAmount: amount,
			Note:        field(row, ColNote),
		}
		if len(list.Extra) > 0 {
			rec.Extra = make(map[string]string, len(list.Extra))
			for _, name := range list.Extra {
				rec.Extra[name] = field(row, name)
			}
		}
		list.Records = append(list.Records, rec)
	}
	return list, nil
}

func isBaseColumn(name string) bool {
	for _, c := range baseColumns {
		if c == name {
			return true
		}
	}
	return false
}
