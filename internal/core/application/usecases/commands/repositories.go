// Package commands contains the operations that change state: conversation
// turns, order status changes and draft housekeeping.
// All commands follow the same pattern: a validated value object, a handler,
// and a unit of work around the writes.
package commands

import (
	"context"

	"github.com/u44592/hni/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DraftRepoFactory provides access to the draft store within a transaction.
	DraftRepoFactory interface {
		DraftRepository() ports.DraftRepository
	}

	// OrderRepoFactory provides access to the order ledger within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DraftUoW manages transactions for draft-only operations.
	DraftUoW interface {
		TxManager
		DraftRepoFactory
	}

	// DraftUoWFactory creates new draft unit of work instances.
	DraftUoWFactory interface {
		Create() DraftUoW
	}

	// UoW spans the draft store and the order ledger. A conversation turn uses
	// it so that confirming an order and deleting the draft commit together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   drafts := uow.DraftRepository()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DraftRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for conversation turns.
	UoWFactory interface {
		Create() UoW
	}
)
