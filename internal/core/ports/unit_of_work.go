package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each conversation turn.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a turn: the draft write and the
// order write commit together or not at all.
type UnitOfWork interface {
	// Begin starts a database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// DraftRepository returns a DraftRepository bound to the current transaction.
	DraftRepository() DraftRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
