package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/ports"
	"basket/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.Outbox and the write side used by the unit of work.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a repository over the outbox_messages table.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores messages in the current transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if err := m.ID.Validate(); err != nil {
			return err
		}
		if m.Name == "" {
			return errs.NewValueIsRequiredError("outbox message name")
		}
		dtos = append(dtos, fromDomain(m))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetUnsent returns up to limit undelivered messages, oldest first.
func (r *GormOutboxRepository) GetUnsent(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is not positive", limit))
	}

	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// MarkSent records delivery. Already delivered messages keep their first timestamp.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ? AND sent_at IS NULL", raw).
		Update("sent_at", sentAt.UTC()).Error
}
