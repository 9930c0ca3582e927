package order

import (
	"errors"
	"fmt"

	"basket/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
//	Initialized ──> Submitted ──> Processing ──> Fulfilled
//
// Orders are created Initialized. Each later status is reached only from the
// one before it, through Order.TransitionTo.
type Status int

var ErrStatusTransitionIsInvalid = errors.New("status transition is not allowed")

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Initialized
	Submitted
	Processing
	Fulfilled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		Initialized: "Initialized",
		Submitted:   "Submitted",
		Processing:  "Processing",
		Fulfilled:   "Fulfilled",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. when restoring from storage.
func (s Status) Validate() error {
	if s <= Unknown || s > Fulfilled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func getAllowedTransitions() map[Status]Status {
	return map[Status]Status{
		Initialized: Submitted,
		Submitted:   Processing,
		Processing:  Fulfilled,
	}
}

// ValidateTransition checks that an order in status s may move to next.
//
// Example:
//
//	order.Initialized.ValidateTransition(order.Submitted) // nil
//	order.Initialized.ValidateTransition(order.Fulfilled) // ErrStatusTransitionIsInvalid
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if allowed, ok := getAllowedTransitions()[s]; !ok || allowed != next {
		return fmt.Errorf("%w: %s -> %s", ErrStatusTransitionIsInvalid, s, next)
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
