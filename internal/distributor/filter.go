package distributor

import (
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/algod"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

const (
	ReasonDuplicate    = "duplicate account"
	ReasonInvalid      = "invalid address"
	ReasonNoteTooLarge = "note too large"
)

// Filtered is the outcome of pre-filtering a reward list.
type Filtered struct {
	// Send holds transfers ready to be grouped, in input order.
	Send []model.TransferRecord
	// Rejected holds transfers tagged with the reason they were refused.
	Rejected []model.TransferRecord
	// Excluded counts lines dropped because the account was excluded.
	Excluded int
	// Zero counts lines dropped for a zero amount.
	Zero int
}

// Filter drops excluded accounts, rejects every occurrence of a duplicated
// account and every malformed address, and drops zero amounts. The order of
// the steps matters: an excluded account is never reported as a duplicate.
func Filter(records []model.TransferRecord, exclude model.AddressSet, note NoteMode) Filtered {
	var out Filtered

	kept := make([]model.TransferRecord, 0, len(records))
	occurrences := make(map[string]int, len(records))
	for _, r := range records {
		if exclude.Contains(r.Account) {
			out.Excluded++
			continue
		}
		kept = append(kept, r)
		occurrences[r.Account]++
	}

	for _, r := range kept {
		switch {
		case occurrences[r.Account] > 1:
			out.Rejected = append(out.Rejected, r.Failed(ReasonDuplicate))
		case !algod.IsValidAddress(r.Account):
			out.Rejected = append(out.Rejected, r.Failed(ReasonInvalid))
		case r.TokenAmount == 0:
			out.Zero++
		case note == NoteRaw && len(r.Note) > algod.MaxNoteSize:
			out.Rejected = append(out.Rejected, r.Failed(ReasonNoteTooLarge))
		default:
			out.Send = append(out.Send, r)
		}
	}
	return out
}

// Chunk splits records into groups of size, the last possibly smaller.
func Chunk(records []model.TransferRecord, size int) [][]model.TransferRecord {
	if size < 1 {
		size = 1
	}
	groups := make([][]model.TransferRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		groups = append(groups, records[start:end])
	}
	return groups
}
