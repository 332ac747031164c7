// Package catalogrepo reads provider locations and their menus and answers
// nearby searches for the conversation.
package catalogrepo

import (
	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ProviderDTO struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Name      string                `gorm:"type:varchar(255);not null"`
	Locations []ProviderLocationDTO `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
	Menus     []MenuDTO             `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
}

func (ProviderDTO) TableName() string {
	return "providers"
}

type ProviderLocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Address1   string    `gorm:"type:varchar(255);not null"`
	Address2   string    `gorm:"type:varchar(255)"`
	City       string    `gorm:"type:varchar(128)"`
	State      string    `gorm:"type:varchar(32)"`
	Zip        string    `gorm:"type:varchar(16)"`
	Latitude   float64   `gorm:"not null;index:idx_provider_locations_lat_lng"`
	Longitude  float64   `gorm:"not null;index:idx_provider_locations_lat_lng"`
}

func (ProviderLocationDTO) TableName() string {
	return "provider_locations"
}

type MenuDTO struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name       string        `gorm:"type:varchar(255)"`
	StartHour  int           `gorm:"type:smallint;not null"`
	EndHour    int           `gorm:"type:smallint;not null"`
	Position   int           `gorm:"not null"`
	Items      []MenuItemDTO `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
}

func (MenuDTO) TableName() string {
	return "menus"
}

type MenuItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	PriceCents int64     `gorm:"not null"`
	Position   int       `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func locationToDomain(dto ProviderLocationDTO, menus []*catalog.Menu) (*catalog.ProviderLocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	addr, err := kernel.NewAddress(dto.Address1, dto.Address2, dto.City, dto.State, dto.Zip)
	if err != nil {
		return nil, err
	}

	loc, err := catalog.NewLocation(id, providerID, dto.Name, addr)
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return catalog.NewProviderLocation(loc, point, menus)
}

func menuToDomain(dto MenuDTO) (*catalog.Menu, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]catalog.MenuItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.PriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := catalog.NewMenuItem(itemID, itemDTO.Name, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return catalog.NewMenu(id, dto.Name, dto.StartHour, dto.EndHour, items)
}
