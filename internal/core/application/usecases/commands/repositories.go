// Package commands contains business operations that modify basket state.
// Every handler follows the same pattern: validate the command, open a unit of work,
// load the aggregate, apply the change, record explicit write intents and commit.
// The deferred rollback releases the transaction on every early exit.
package commands

import (
	"context"

	"basket/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderLineRepoFactory provides access to order line repository within a transaction.
	OrderLineRepoFactory interface {
		OrderLineRepository() ports.OrderLineRepository
	}

	// ClientRepoFactory provides access to client repository within a transaction.
	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	// OrderUoW manages transactions for operations on an existing order and its lines.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderLineRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that may also register a client.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   clientRepo := uow.ClientRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		OrderLineRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
