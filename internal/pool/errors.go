package pool

import "errors"

// Error kinds surfaced by pool operations. Every failure wraps exactly one of
// these so an embedding system can decide via errors.Is whether a request is
// rejected outright or retryable with corrected input.
var (
	// ErrInvalidArgument marks malformed caller input: wrong token key set,
	// non-positive amounts where positivity is required, or a proportionality
	// check failing tolerance.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionFailed marks a weight-dependent operation invoked before
	// the pool has been initialized.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInsufficientBalance marks a swap whose input amount exceeds the
	// pool's balance of the input token.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientShares marks a redemption whose ratio exceeds the
	// outstanding share accounting.
	ErrInsufficientShares = errors.New("insufficient shares")
)
