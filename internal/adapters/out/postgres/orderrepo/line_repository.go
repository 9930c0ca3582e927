package orderrepo

import (
	"context"
	"fmt"

	"basket/internal/adapters/out/postgres/pgerr"
	"basket/internal/core/domain/model/order"
	"basket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderLineRepository implements ports.OrderLineRepository using GORM.
// A write that finds the row missing, or a duplicate product, means another
// transaction changed the order first and is reported as errs.ErrVersionIsInvalid.
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewGormOrderLineRepository creates a line repository bound to db, usually the
// transaction of the enclosing unit of work.
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// Add inserts line under orderID and stores the generated id back on the line.
func (r *GormOrderLineRepository) Add(ctx context.Context, orderID int64, line *order.OrderLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := lineFromDomain(orderID, line)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewVersionIsInvalidErrorWithCause("order line", err)
		}
		return err
	}

	return line.AssignID(dto.ID)
}

// Update writes the line's quantity. A line deleted concurrently yields
// errs.ErrVersionIsInvalid.
func (r *GormOrderLineRepository) Update(ctx context.Context, line *order.OrderLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderLineDTO{}).
		Where("id = ?", line.ID()).
		Updates(map[string]any{
			"quantity":  line.Quantity(),
			"timestamp": line.Timestamp(),
		})
	if result.Error != nil {
		return result.Error
	}

	return lineAffected(result.RowsAffected, line)
}

// Delete removes the line. Like Update, it reports a line that is already gone
// as errs.ErrVersionIsInvalid.
func (r *GormOrderLineRepository) Delete(ctx context.Context, line *order.OrderLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderLineDTO{}, line.ID())
	if result.Error != nil {
		return result.Error
	}

	return lineAffected(result.RowsAffected, line)
}

func lineAffected(rows int64, line *order.OrderLine) error {
	if rows == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order line",
			fmt.Errorf("line %d (%s) is gone", line.ID(), line.ProductCode()))
	}
	return nil
}
