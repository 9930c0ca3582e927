package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"basket/internal/pkg/errs"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a postal address used for billing and shipping.
// Country is an ISO 3166-1 alpha-2 code and is the only mandatory part;
// the remaining fields are stored as given after trimming.
//
// Example:
//
//	addr, err := kernel.NewAddress("DE", "Berlin", "Berlin", "10115", "Wittenauer Straße")
//	if err != nil {
//	    return err
//	}
type Address struct {
	country     string
	state       string
	city        string
	zip         string
	addressLine string

	isConstructed bool
}

// NewAddress validates and creates an Address. The country code is upper-cased.
func NewAddress(country, state, city, zip, addressLine string) (Address, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return Address{}, errs.NewValueIsRequiredError("country")
	}
	if len(country) != 2 || !isLetters(country) {
		return Address{}, errs.NewValueIsInvalidErrorWithCause(
			"country",
			fmt.Errorf("%q is not a two letter country code", country),
		)
	}

	return Address{
		country:       country,
		state:         strings.TrimSpace(state),
		city:          strings.TrimSpace(city),
		zip:           strings.TrimSpace(zip),
		addressLine:   strings.TrimSpace(addressLine),
		isConstructed: true,
	}, nil
}

func (a Address) Validate() error {
	if !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

func (a Address) Country() string {
	return a.country
}

func (a Address) State() string {
	return a.state
}

func (a Address) City() string {
	return a.city
}

func (a Address) Zip() string {
	return a.zip
}

func (a Address) AddressLine() string {
	return a.addressLine
}

// IsEqual compares addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a == other
}

func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.addressLine, a.zip, a.city, a.state, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
