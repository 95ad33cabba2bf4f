package model

// TransferRecord is a single payout moving through distribution. It carries
// the reward list columns it was read from so outcome logs can echo them.
type TransferRecord struct {
	Account     string
	UserType    string
	TokenAmount uint64
	Note        string
	// Extra holds reward list columns beyond the known ones, keyed by header.
	Extra map[string]string

	TxID  string
	Error string
}

// Failed returns a copy of the record tagged with a failure reason.
func (r TransferRecord) Failed(reason string) TransferRecord {
	r.TxID = ""
	r.Error = reason
	return r
}

// Sent returns a copy of the record tagged with its transaction id.
func (r TransferRecord) Sent(txID string) TransferRecord {
	r.TxID = txID
	r.Error = ""
	return r
}
