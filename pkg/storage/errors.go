package storage

import (
	"errors"
	"fmt"
)

// ErrAccountNotFound is returned when no account matches the given id or email.
var ErrAccountNotFound = errors.New("account not found")

// ErrRewardNotFound is returned when no reward matches the given id.
var ErrRewardNotFound = errors.New("reward not found")

// ErrAlreadyExists is returned when a create collides with an existing record.
var ErrAlreadyExists = errors.New("already exists")

// ErrInsufficientFunds is returned when an account's balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSelfTransfer is returned when a transfer resolves to the sender's own account.
var ErrSelfTransfer = errors.New("cannot transfer tokens to yourself")

// ErrRewardUnavailable is returned when a reward is inactive or its stock is exhausted.
var ErrRewardUnavailable = errors.New("reward unavailable")

// ErrConcurrencyConflict is returned when an atomic conditional update lost its
// race against a concurrent writer. Callers may retry.
var ErrConcurrencyConflict = errors.New("concurrent update conflict")

// ErrStoreUnavailable is returned when the store timed out or could not be
// reached. The operation left no partial state and may be retried.
var ErrStoreUnavailable = errors.New("store unavailable")

// ValidationError reports a request field that failed shape or range checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
