// Package outboxrepo stores integration events written in the same transaction
// as the aggregate change they describe, and tracks their delivery.
package outboxrepo

import (
	"time"

	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is one outbox row. SentAt stays NULL until the relay delivers it.
type MessageDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(128);not null"`
	Key        string     `gorm:"type:varchar(128);not null;index"`
	Payload    []byte     `gorm:"type:jsonb;not null"`
	OccurredAt time.Time  `gorm:"not null;index"`
	SentAt     *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m ports.OutboxMessage) MessageDTO {
	return MessageDTO{
		ID:         m.ID.Bytes(),
		Name:       m.Name,
		Key:        m.Key,
		Payload:    m.Payload,
		OccurredAt: m.OccurredAt.UTC(),
	}
}

func toDomain(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:         id,
		Name:       dto.Name,
		Key:        dto.Key,
		Payload:    dto.Payload,
		OccurredAt: dto.OccurredAt,
	}, nil
}
