package order

import (
	"errors"
	"time"

	"basket/internal/core/domain/model/kernel"
)

// BillingInfo is where and how the order is paid.
type BillingInfo struct {
	address       kernel.Address
	paymentMethod PaymentMethod
	timestamp     time.Time
}

func NewBillingInfo(address kernel.Address, paymentMethod PaymentMethod, timestamp time.Time) (BillingInfo, error) {
	if err := errors.Join(address.Validate(), paymentMethod.Validate()); err != nil {
		return BillingInfo{}, err
	}
	return BillingInfo{address: address, paymentMethod: paymentMethod, timestamp: timestamp.UTC()}, nil
}

func (b BillingInfo) Address() kernel.Address {
	return b.address
}

func (b BillingInfo) PaymentMethod() PaymentMethod {
	return b.paymentMethod
}

func (b BillingInfo) Timestamp() time.Time {
	return b.timestamp
}

// ShippingInfo is where the order is delivered.
type ShippingInfo struct {
	address   kernel.Address
	timestamp time.Time
}

func NewShippingInfo(address kernel.Address, timestamp time.Time) (ShippingInfo, error) {
	if err := address.Validate(); err != nil {
		return ShippingInfo{}, err
	}
	return ShippingInfo{address: address, timestamp: timestamp.UTC()}, nil
}

func (s ShippingInfo) Address() kernel.Address {
	return s.address
}

func (s ShippingInfo) Timestamp() time.Time {
	return s.timestamp
}
