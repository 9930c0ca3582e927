package clientrepo

import (
	"context"
	"errors"

	"basket/internal/adapters/out/postgres/pgerr"
	"basket/internal/core/domain/model/client"
	"basket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormClientRepository implements ports.ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a repository over the clients and contacts tables.
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Add inserts the client with its contacts and assigns the generated id.
// A concurrent insert of the same code surfaces as errs.ErrVersionIsInvalid so
// the caller can retry and pick up the stored client.
func (r *GormClientRepository) Add(ctx context.Context, c *client.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := FromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewVersionIsInvalidErrorWithCause("client code", err)
		}
		return err
	}

	return c.AssignID(dto.ID)
}

// GetByCode loads a client with its contacts.
func (r *GormClientRepository) GetByCode(ctx context.Context, code string) (*client.Client, error) {
	var dto ClientDTO
	if err := r.db.WithContext(ctx).Preload("Contacts").First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client", code)
		}
		return nil, err
	}

	return ToDomain(dto)
}
