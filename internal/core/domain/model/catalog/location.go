package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/errs"
)

// Location is a provider's physical storefront as shown to the user. It is the
// part of a ProviderLocation that drafts and orders keep.
type Location struct {
	id         kernel.UUID
	providerID kernel.UUID
	name       string
	address    kernel.Address
}

// NewLocation validates identifiers, name and address.
func NewLocation(id, providerID kernel.UUID, name string, address kernel.Address) (Location, error) {
	var errName error
	if strings.TrimSpace(name) == "" {
		errName = errs.NewValueIsRequiredError("location name")
	}
	if err := errors.Join(id.Validate(), providerID.Validate(), errName, address.Validate()); err != nil {
		return Location{}, err
	}
	return Location{id: id, providerID: providerID, name: name, address: address}, nil
}

func (l Location) ID() kernel.UUID         { return l.id }
func (l Location) ProviderID() kernel.UUID { return l.providerID }
func (l Location) Name() string            { return l.name }
func (l Location) Address() kernel.Address { return l.address }

// Validate rejects zero-value locations.
func (l Location) Validate() error {
	return errors.Join(l.id.Validate(), l.address.Validate())
}

// IsEqual compares locations by identifier.
func (l Location) IsEqual(other Location) bool {
	return l.id.IsEqual(other.id)
}

// ProviderLocation is a Location together with its provider's menus, as
// returned by the nearby search.
type ProviderLocation struct {
	Location

	point kernel.GeoPoint
	menus []*Menu
}

// NewProviderLocation attaches coordinates and menus (in catalog order) to a location.
func NewProviderLocation(location Location, point kernel.GeoPoint, menus []*Menu) (*ProviderLocation, error) {
	if err := errors.Join(location.Validate(), point.Validate()); err != nil {
		return nil, err
	}
	copied := make([]*Menu, len(menus))
	copy(copied, menus)
	return &ProviderLocation{Location: location, point: point, menus: copied}, nil
}

func (p *ProviderLocation) Point() kernel.GeoPoint { return p.point }

// Menus returns the provider menus in catalog order.
func (p *ProviderLocation) Menus() []*Menu {
	menus := make([]*Menu, len(p.menus))
	copy(menus, p.menus)
	return menus
}

// ActiveMenu returns the first menu active at now.
func (p *ProviderLocation) ActiveMenu(now time.Time) (*Menu, bool) {
	for _, m := range p.menus {
		if m.IsActiveAt(now) {
			return m, true
		}
	}
	return nil, false
}

// ActiveMenuFirstItem returns the first item of the first active menu. A
// location with no active menu, or whose active menu is empty, has none.
func (p *ProviderLocation) ActiveMenuFirstItem(now time.Time) (MenuItem, bool) {
	m, ok := p.ActiveMenu(now)
	if !ok {
		return MenuItem{}, false
	}
	return m.FirstItem()
}

// AddressResolutionError is returned by the catalog gateway when the free-text
// address cannot be geocoded. Message is meant to be shown to the user as is.
type AddressResolutionError struct {
	Message string
	Cause   error
}

func NewAddressResolutionError(message string, cause error) *AddressResolutionError {
	return &AddressResolutionError{Message: message, Cause: cause}
}

func (e *AddressResolutionError) Error() string {
	return e.Message
}

func (e *AddressResolutionError) Unwrap() error {
	return e.Cause
}
