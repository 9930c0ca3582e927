package queries

import (
	"context"

	"basket/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads order summaries straight from the database
// without rebuilding aggregates.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler reading from db.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns summaries sorted by order id. Orders without lines have a zero total.
func (h GetOpenOrdersQueryHandler) Handle(ctx context.Context, query GetOpenOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			c.code,
			o.status,
			COUNT(l.id),
			COALESCE(SUM(l.quantity * l.unit_cost), 0),
			cur.code
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		JOIN currencies cur ON cur.id = o.currency_id
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.status != ?
		GROUP BY o.id, c.code, o.status, cur.code
		ORDER BY o.id
	`, int(order.Fulfilled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			summary OrderSummary
			status  int
		)

		if err = rows.Scan(
			&summary.ID,
			&summary.ClientCode,
			&status,
			&summary.Lines,
			&summary.Total,
			&summary.CurrencyCode,
		); err != nil {
			return nil, err
		}

		summary.Status = order.Status(status)
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
