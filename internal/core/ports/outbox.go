package ports

import (
	"context"
	"time"

	"basket/internal/core/domain/model/kernel"
)

// OutboxMessage is an integration event stored in the same transaction as the
// change it describes and published later.
type OutboxMessage struct {
	ID         kernel.UUID
	Name       string
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

// Outbox reads pending messages and records their delivery.
type Outbox interface {
	GetUnsent(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error
}

// MessagePublisher delivers outbox messages to a broker. Publish either delivers
// every message or returns an error; partial delivery is retried as a whole.
type MessagePublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
