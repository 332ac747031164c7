package order

import (
	"errors"
	"fmt"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/errs"
)

// Item is an order line. The unit price is captured from the menu item at
// confirmation time, so later catalog price changes do not alter the order.
type Item struct {
	quantity  int
	unitPrice kernel.Money
	menuItem  catalog.MenuItem
}

// NewItem validates a positive quantity and a constructed menu item.
func NewItem(quantity int, unitPrice kernel.Money, menuItem catalog.MenuItem) (Item, error) {
	var errQty error
	if quantity <= 0 {
		errQty = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(errQty, menuItem.Validate()); err != nil {
		return Item{}, err
	}
	return Item{quantity: quantity, unitPrice: unitPrice, menuItem: menuItem}, nil
}

func (i Item) Quantity() int              { return i.quantity }
func (i Item) UnitPrice() kernel.Money    { return i.unitPrice }
func (i Item) MenuItem() catalog.MenuItem { return i.menuItem }
func (i Item) LineTotal() kernel.Money    { return i.unitPrice.Times(i.quantity) }
