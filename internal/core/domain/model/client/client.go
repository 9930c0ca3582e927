package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"basket/internal/pkg/errs"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")

// Client is the owner of one or more orders.
type Client struct {
	id        int64
	code      string
	firstName string
	lastName  string
	birthDate *time.Time
	gender    Gender
	contacts  []Contact

	isConstructed bool
}

// NewClient creates a client that has not been stored yet (ID is 0).
//
// Example:
//
//	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
//	email, _ := client.NewContact(client.Email, "john@doe.test")
//	c, err := client.NewClient("4829", "John", "Doe", &birth, client.Male, []client.Contact{email})
func NewClient(
	code, firstName, lastName string,
	birthDate *time.Time,
	gender Gender,
	contacts []Contact,
) (*Client, error) {
	return RestoreClient(0, code, firstName, lastName, birthDate, gender, contacts)
}

// RestoreClient rebuilds a stored client.
func RestoreClient(
	id int64,
	code, firstName, lastName string,
	birthDate *time.Time,
	gender Gender,
	contacts []Contact,
) (*Client, error) {
	c := &Client{
		id:            id,
		firstName:     strings.TrimSpace(firstName),
		lastName:      strings.TrimSpace(lastName),
		isConstructed: true,
	}

	if err := errors.Join(
		c.setCode(code),
		c.setBirthDate(birthDate),
		c.setGender(gender),
		c.setContacts(contacts),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

func (c *Client) ID() int64 {
	return c.id
}

// IsStored reports whether the client already has a storage identity.
func (c *Client) IsStored() bool {
	return c.id != 0
}

// AssignID records the identity given by storage. It can only be set once.
func (c *Client) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("client id", fmt.Errorf("%d is not positive", id))
	}
	if c.id != 0 && c.id != id {
		return errs.NewValueIsInvalidErrorWithCause("client id", fmt.Errorf("already assigned %d", c.id))
	}
	c.id = id
	return nil
}

func (c *Client) Code() string {
	return c.code
}

func (c *Client) FirstName() string {
	return c.firstName
}

func (c *Client) LastName() string {
	return c.lastName
}

func (c *Client) BirthDate() *time.Time {
	return c.birthDate
}

func (c *Client) Gender() Gender {
	return c.gender
}

// Contacts returns a copy of the client's contacts.
func (c *Client) Contacts() []Contact {
	out := make([]Contact, len(c.contacts))
	copy(out, c.contacts)
	return out
}

func (c *Client) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("client code")
	}
	c.code = code
	return nil
}

func (c *Client) setBirthDate(birthDate *time.Time) error {
	if birthDate == nil {
		return nil
	}
	if birthDate.After(time.Now()) {
		return errs.NewValueIsInvalidErrorWithCause("birth date", fmt.Errorf("%s is in the future", birthDate.Format(time.DateOnly)))
	}
	d := birthDate.UTC()
	c.birthDate = &d
	return nil
}

func (c *Client) setGender(gender Gender) error {
	if err := gender.Validate(); err != nil {
		return err
	}
	c.gender = gender
	return nil
}

func (c *Client) setContacts(contacts []Contact) error {
	for i, contact := range contacts {
		if err := contact.Validate(); err != nil {
			return fmt.Errorf("contact %d: %w", i, err)
		}
	}
	c.contacts = append([]Contact(nil), contacts...)
	return nil
}
