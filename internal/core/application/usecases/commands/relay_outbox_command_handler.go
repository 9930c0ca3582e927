package commands

import (
	"context"
	"fmt"
	"time"

	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/ports"
)

// RelayOutboxCommandHandler moves committed order events from the outbox to the broker.
// Delivery is at least once: a crash between Publish and MarkSent republishes the batch,
// and consumers deduplicate on the event id.
type RelayOutboxCommandHandler struct {
	outbox    ports.Outbox
	publisher ports.MessagePublisher
	now       func() time.Time
}

// NewRelayOutboxCommandHandler creates a handler that reads pending messages from
// outbox and sends them through publisher.
func NewRelayOutboxCommandHandler(outbox ports.Outbox, publisher ports.MessagePublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		outbox:    outbox,
		publisher: publisher,
		now:       time.Now,
	}
}

// Handle publishes at most cmd.BatchSize() messages and returns how many were sent.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.outbox.GetUnsent(ctx, cmd.BatchSize())
	if err != nil {
		return 0, fmt.Errorf("read outbox: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, fmt.Errorf("publish %d outbox messages: %w", len(messages), err)
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if err = h.outbox.MarkSent(ctx, ids, h.now()); err != nil {
		return 0, fmt.Errorf("mark outbox messages sent: %w", err)
	}

	return len(messages), nil
}
