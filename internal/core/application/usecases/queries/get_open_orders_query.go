package queries

import (
	"errors"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
	"github.com/u44592/hni/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery lists the orders providers still have to fulfill, that
// is every order that is not closed, oldest first.
//
// Example:
//
//	handler := NewGetOpenOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, NewGetOpenOrdersQuery())
//	if err != nil {
//	    return err
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s %s at %s: %s\n", o.ID, o.Status, o.LocationName, o.Items)
//	}
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse is one row of the fulfillment list. Items holds
// the item names joined in order.
type GetOpenOrdersQueryResponse struct {
	ID               kernel.UUID
	UserID           kernel.UUID
	CreatedAt        time.Time
	LocationName     string
	LocationAddress1 string
	Items            string
	Subtotal         kernel.Money
	Status           order.Status
}
