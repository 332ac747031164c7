package order

import (
	"errors"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when confirming a selection without items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order items")
)

// OrderedQuantity is the quantity of every line created from a conversation.
const OrderedQuantity = 1

// Order is a confirmed meal order. It is the aggregate root handed to the
// order ledger when a conversation ends with CONFIRM.
//
// Order follows these invariants:
//   - Has a valid identifier, user and provider location
//   - Has at least one line item
//   - Subtotal equals the sum of unit price times quantity of its items
//   - Status transitions follow Status rules
type Order struct {
	id        kernel.UUID
	userID    kernel.UUID
	createdAt time.Time
	location  catalog.Location
	items     []Item
	subtotal  kernel.Money
	status    Status

	isConstructed bool
}

// NewOrder builds an Open order with one line per selected menu item, each with
// quantity OrderedQuantity at the item's current price.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), user.ID(), time.Now(), chosen, d.SelectedItems())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.Subtotal()) // "$6.50"
func NewOrder(
	id, userID kernel.UUID,
	createdAt time.Time,
	location catalog.Location,
	selected []catalog.MenuItem,
) (*Order, error) {
	items := make([]Item, 0, len(selected))
	for _, menuItem := range selected {
		item, err := NewItem(OrderedQuantity, menuItem.Price(), menuItem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	o := &Order{
		createdAt:     createdAt,
		status:        Open,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setLocation(location),
		o.setItems(items),
	); err != nil {
		return nil, err
	}
	o.subtotal = computeSubtotal(o.items)

	return o, nil
}

// RestoreOrder rebuilds an order read from persistence. The stored subtotal is
// trusted as is; it was computed at confirmation time.
func RestoreOrder(
	id, userID kernel.UUID,
	createdAt time.Time,
	location catalog.Location,
	items []Item,
	subtotal kernel.Money,
	status Status,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		subtotal:      subtotal,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setLocation(location),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) UserID() kernel.UUID        { return o.userID }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) Location() catalog.Location { return o.location }
func (o *Order) Subtotal() kernel.Money     { return o.subtotal }
func (o *Order) Status() Status             { return o.status }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Place marks the order as accepted by the provider.
func (o *Order) Place() error {
	return o.transition(Ordered)
}

// Close marks the order as done.
func (o *Order) Close() error {
	return o.transition(Closed)
}

// ChangeStatus applies the transition leading to target.
func (o *Order) ChangeStatus(target Status) error {
	return o.transition(target)
}

func (o *Order) transition(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.userID = id
	return nil
}

func (o *Order) setLocation(location catalog.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func computeSubtotal(items []Item) kernel.Money {
	var total kernel.Money
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
