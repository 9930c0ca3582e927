package order

import (
	"fmt"

	"basket/internal/pkg/errs"
)

// PaymentMethod chosen by the client at initialization.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	CreditCard
	WireTransfer
	PayPal
	Bitcoin
)

func (m PaymentMethod) Validate() error {
	if m < CreditCard || m > Bitcoin {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	switch m {
	case CreditCard:
		return "CreditCard"
	case WireTransfer:
		return "WireTransfer"
	case PayPal:
		return "PayPal"
	case Bitcoin:
		return "Bitcoin"
	default:
		return "Unknown"
	}
}
