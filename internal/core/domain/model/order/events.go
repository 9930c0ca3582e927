package order

import (
	"time"

	"basket/internal/core/domain/model/kernel"
)

// ChangedEventName is the integration event type written for every committed order change.
const ChangedEventName = "order.changed"

// ChangedEvent is a snapshot of an order after a committed change.
// Amounts are decimal strings so consumers never see float rounding.
type ChangedEvent struct {
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	OrderID    int64     `json:"order_id"`
	ClientCode string    `json:"client_code"`
	Status     string    `json:"status"`
	Currency   string    `json:"currency"`
	Total      string    `json:"total"`
	LineCount  int       `json:"line_count"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewChangedEvent snapshots o. Call it after the order has its id.
func NewChangedEvent(o *Order, occurredAt time.Time) ChangedEvent {
	clientCode := ""
	if o.client != nil {
		clientCode = o.client.Code()
	}

	return ChangedEvent{
		EventID:    kernel.NewUUID().String(),
		Name:       ChangedEventName,
		OrderID:    o.id,
		ClientCode: clientCode,
		Status:     o.status.String(),
		Currency:   o.currency.Code(),
		Total:      o.RoundedTotal().String(),
		LineCount:  len(o.lines),
		Version:    o.version,
		OccurredAt: occurredAt.UTC(),
	}
}
