package ports

import (
	"context"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
)

// OrderRepository is the order ledger holding finalized orders.
type OrderRepository interface {
	// Add persists a new finalized order with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// RecentForUser returns the user's orders created at or after since,
	// newest first.
	RecentForUser(ctx context.Context, userID kernel.UUID, since time.Time) ([]*order.Order, error)
}
