// Package postgres provides the GORM-based Unit of Work and the schema lifecycle
// (connection, migrations, seed data) of the basket store.
//
// A unit of work owns one transaction. Repositories handed out after Begin run
// inside it; every order they add or update is tracked, and Commit writes one
// order.changed outbox message per tracked order before committing, so the
// change and its event become visible together.
//
// Basic Transaction Management:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// changes nothing, which is what makes the deferred call above safe.
//
// Each UnitOfWork instance is single-goroutine; concurrent operations create
// their own instances through the factory.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"basket/internal/adapters/out/postgres/clientrepo"
	"basket/internal/adapters/out/postgres/orderrepo"
	"basket/internal/adapters/out/postgres/outboxrepo"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
//
// Example:
//
//	db, err := postgres.Open(dsn, postgres.PoolConfig{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormUnitOfWorkFactory creates a factory whose units of work share db.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, now: time.Now}
}

// Create produces a new unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without the interface conversion.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		now:     f.now,
		tracked: make([]*order.Order, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the orders
// written through it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	now     func() time.Time
	tracked []*order.Order
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.tracked = uow.tracked[:0]
	return nil
}

// Commit writes the outbox messages of every tracked order and commits.
// A failed outbox write rolls the whole transaction back.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	messages, err := uow.outboxMessages()
	if err == nil {
		err = outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
	}
	if err != nil {
		_ = uow.tx.Rollback().Error
		uow.reset()
		return fmt.Errorf("write outbox: %w", err)
	}

	err = uow.tx.Commit().Error
	uow.reset()
	return err
}

// Rollback discards all changes made within the current transaction.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.reset()
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
// Orders added or updated through it are tracked for the outbox.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OrderLineRepository provides access to order line writes within the unit of work.
func (uow *GormUnitOfWork) OrderLineRepository() ports.OrderLineRepository {
	return orderrepo.NewGormOrderLineRepository(uow.conn())
}

// ClientRepository provides access to client persistence within the unit of work.
func (uow *GormUnitOfWork) ClientRepository() ports.ClientRepository {
	return clientrepo.NewGormClientRepository(uow.conn())
}

// TrackAggregate registers an order as modified within this unit of work.
// Tracking the same order twice yields a single outbox message with its final state.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *order.Order) {
	for _, o := range uow.tracked {
		if o == aggregate {
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

// TrackedAggregates returns the orders written since Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []*order.Order {
	out := make([]*order.Order, len(uow.tracked))
	copy(out, uow.tracked)
	return out
}

// conn returns the transaction if one is active, otherwise the main connection.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) reset() {
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
}

func (uow *GormUnitOfWork) outboxMessages() ([]ports.OutboxMessage, error) {
	occurredAt := uow.now().UTC()
	messages := make([]ports.OutboxMessage, 0, len(uow.tracked))
	for _, o := range uow.tracked {
		event := order.NewChangedEvent(o, occurredAt)
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}

		id, err := kernel.UUIDFromString(event.EventID)
		if err != nil {
			return nil, err
		}

		messages = append(messages, ports.OutboxMessage{
			ID:         id,
			Name:       event.Name,
			Key:        strconv.FormatInt(o.ID(), 10),
			Payload:    payload,
			OccurredAt: occurredAt,
		})
	}
	return messages, nil
}
