package ports

import (
	"errors"
)

// Failure kinds reported by basket operations. Callers match them with errors.Is;
// the wrapped cause carries the detail.
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists on order")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrCurrencyNotFound     = errors.New("currency not found")
	ErrCurrencyMismatch     = errors.New("product currency differs from order currency")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrConflict             = errors.New("order was modified concurrently")
	ErrTimeout              = errors.New("operation timed out")
	ErrNotImplemented       = errors.New("not implemented")
	ErrInvalidTransition    = errors.New("order status transition is not allowed")
)

var businessFailures = []error{
	ErrOrderNotFound,
	ErrProductNotFound,
	ErrProductAlreadyExists,
	ErrInvalidQuantity,
	ErrCurrencyNotFound,
	ErrCurrencyMismatch,
	ErrInvalidArgument,
	ErrConflict,
	ErrNotImplemented,
	ErrInvalidTransition,
}

// IsBusinessError reports whether err is a caller-facing failure rather than a
// system fault. Timeouts are retryable system faults.
func IsBusinessError(err error) bool {
	for _, kind := range businessFailures {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Fail tags cause with a failure kind so both match errors.Is.
func Fail(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &failure{kind: kind, cause: cause}
}

type failure struct {
	kind  error
	cause error
}

func (f *failure) Error() string {
	return f.kind.Error() + ": " + f.cause.Error()
}

func (f *failure) Unwrap() []error {
	return []error{f.kind, f.cause}
}
