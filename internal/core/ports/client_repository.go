package ports

import (
	"context"

	"basket/internal/core/domain/model/client"
)

// ClientRepository stores clients by their natural key.
type ClientRepository interface {
	// Add inserts a client and assigns the storage id.
	Add(ctx context.Context, c *client.Client) error

	// GetByCode returns errs.ErrObjectNotFound when no client has this code.
	GetByCode(ctx context.Context, code string) (*client.Client, error)
}
