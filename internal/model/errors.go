package model

import "errors"

var (
	// ErrTransientFetch marks a chain or feed read that may succeed on retry.
	ErrTransientFetch = errors.New("transient fetch error")
	// ErrValidation marks a reward line rejected before submission.
	ErrValidation = errors.New("validation error")
	// ErrSubmission marks a transfer group rejected by the ledger.
	ErrSubmission = errors.New("submission error")
	// ErrConfiguration marks missing or inconsistent input; fatal before side effects.
	ErrConfiguration = errors.New("configuration error")
)
