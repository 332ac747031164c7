// Package orderrepo persists finalized orders and their line items. An order
// keeps a copy of the provider location and menu items as they were at
// confirmation, so later catalog edits do not rewrite history.
package orderrepo

import (
	"time"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_orders_user_created,priority:1"`
	CreatedAt     time.Time      `gorm:"not null;index:idx_orders_user_created,priority:2"`
	Location      LocationDTO    `gorm:"embedded;embeddedPrefix:location_"`
	SubtotalCents int64          `gorm:"type:bigint;not null"`
	Status        int            `gorm:"type:smallint;not null;index"`
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO is the provider location snapshot embedded in the orders row.
type LocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;not null"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Address1   string    `gorm:"type:varchar(255);not null"`
	Address2   string    `gorm:"type:varchar(255)"`
	City       string    `gorm:"type:varchar(100)"`
	State      string    `gorm:"type:varchar(50)"`
	Zip        string    `gorm:"type:varchar(20)"`
}

// OrderItemDTO is one line of an order.
type OrderItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"type:int;not null"`
	MenuItemName   string    `gorm:"type:varchar(255);not null"`
	MenuItemCents  int64     `gorm:"type:bigint;not null"`
	Quantity       int       `gorm:"type:int;not null"`
	UnitPriceCents int64     `gorm:"type:bigint;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	loc := o.Location()
	addr := loc.Address()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        orderID,
			MenuItemID:     item.MenuItem().ID().Bytes(),
			Position:       i,
			MenuItemName:   item.MenuItem().Name(),
			MenuItemCents:  item.MenuItem().Price().Cents(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
		})
	}

	return OrderDTO{
		ID:        orderID,
		UserID:    o.UserID().Bytes(),
		CreatedAt: o.CreatedAt(),
		Location: LocationDTO{
			ID:         loc.ID().Bytes(),
			ProviderID: loc.ProviderID().Bytes(),
			Name:       loc.Name(),
			Address1:   addr.Line1(),
			Address2:   addr.Line2(),
			City:       addr.City(),
			State:      addr.State(),
			Zip:        addr.Zip(),
		},
		SubtotalCents: o.Subtotal().Cents(),
		Status:        int(o.Status()),
		Items:         items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	loc, err := locationToDomain(dto.Location)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, userID, dto.CreatedAt, loc, items, subtotal, order.Status(dto.Status))
}

func locationToDomain(dto LocationDTO) (catalog.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Location{}, err
	}

	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return catalog.Location{}, err
	}

	addr, err := kernel.NewAddress(dto.Address1, dto.Address2, dto.City, dto.State, dto.Zip)
	if err != nil {
		return catalog.Location{}, err
	}

	return catalog.NewLocation(id, providerID, dto.Name, addr)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}

	price, err := kernel.NewMoney(dto.MenuItemCents)
	if err != nil {
		return order.Item{}, err
	}

	menuItem, err := catalog.NewMenuItem(menuItemID, dto.MenuItemName, price)
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPriceCents)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(dto.Quantity, unitPrice, menuItem)
}
