// Package clientrepo persists clients and their contacts.
package clientrepo

import (
	"time"

	"basket/internal/core/domain/model/client"
)

// ClientDTO is a row of the clients table. Code is the natural key.
type ClientDTO struct {
	ID        int64        `gorm:"primaryKey;autoIncrement"`
	Code      string       `gorm:"type:varchar(64);not null;uniqueIndex"`
	FirstName string       `gorm:"type:varchar(255)"`
	LastName  string       `gorm:"type:varchar(255)"`
	BirthDate *time.Time   `gorm:"type:date"`
	Gender    int          `gorm:"type:smallint;not null"`
	Contacts  []ContactDTO `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

// ContactDTO is a row of the client_contacts table.
type ContactDTO struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	ClientID int64  `gorm:"not null;index"`
	Type     int    `gorm:"type:smallint;not null"`
	Value    string `gorm:"type:varchar(255);not null"`
}

func (ContactDTO) TableName() string {
	return "client_contacts"
}

// FromDomain maps a client and its contacts to rows.
func FromDomain(c *client.Client) ClientDTO {
	contacts := make([]ContactDTO, 0, len(c.Contacts()))
	for _, contact := range c.Contacts() {
		contacts = append(contacts, ContactDTO{
			ClientID: c.ID(),
			Type:     int(contact.Type()),
			Value:    contact.Value(),
		})
	}

	return ClientDTO{
		ID:        c.ID(),
		Code:      c.Code(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
		BirthDate: c.BirthDate(),
		Gender:    int(c.Gender()),
		Contacts:  contacts,
	}
}

// ToDomain rebuilds a client. Contacts must be preloaded.
func ToDomain(dto ClientDTO) (*client.Client, error) {
	contacts := make([]client.Contact, 0, len(dto.Contacts))
	for _, c := range dto.Contacts {
		contact, err := client.NewContact(client.ContactType(c.Type), c.Value)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	return client.RestoreClient(dto.ID, dto.Code, dto.FirstName, dto.LastName, dto.BirthDate,
		client.Gender(dto.Gender), contacts)
}
