package client

import (
	"errors"
	"fmt"
	"strings"

	"basket/internal/pkg/errs"
)

var ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")

// Gender of a client. Unspecified is a valid value.
type Gender int

const (
	Unspecified Gender = iota
	Male
	Female
)

func (g Gender) Validate() error {
	if g < Unspecified || g > Female {
		return errs.NewValueIsInvalidErrorWithCause("gender", fmt.Errorf("%d is not a valid gender", g))
	}
	return nil
}

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	case Unspecified:
		return "Unspecified"
	default:
		return "Unknown"
	}
}

// ContactType tells how a contact value is used.
type ContactType int

const (
	UnknownContactType ContactType = iota
	Email
	Phone
)

func (t ContactType) Validate() error {
	if t != Email && t != Phone {
		return errs.NewValueIsInvalidErrorWithCause("contact type", fmt.Errorf("%d is not a valid contact type", t))
	}
	return nil
}

func (t ContactType) String() string {
	switch t {
	case Email:
		return "Email"
	case Phone:
		return "Phone"
	default:
		return "Unknown"
	}
}

// Contact is a way to reach a client.
type Contact struct {
	contactType ContactType
	value       string

	isConstructed bool
}

func NewContact(contactType ContactType, value string) (Contact, error) {
	if err := contactType.Validate(); err != nil {
		return Contact{}, err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact value")
	}
	if contactType == Email && !strings.Contains(value, "@") {
		return Contact{}, errs.NewValueIsInvalidErrorWithCause("contact value", fmt.Errorf("%q is not an email address", value))
	}

	return Contact{contactType: contactType, value: value, isConstructed: true}, nil
}

func (c Contact) Validate() error {
	if !c.isConstructed {
		return ErrContactIsNotConstructed
	}
	return nil
}

func (c Contact) Type() ContactType {
	return c.contactType
}

func (c Contact) Value() string {
	return c.value
}
