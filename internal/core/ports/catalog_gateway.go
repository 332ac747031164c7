package ports

import (
	"context"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
)

// CatalogGateway resolves provider locations near a free-text address.
type CatalogGateway interface {
	// FindNearby returns locations within radiusMiles of address, nearest
	// first, with their provider menus attached. An address that cannot be
	// resolved yields a *catalog.AddressResolutionError.
	FindNearby(ctx context.Context, address string, radiusMiles float64) ([]*catalog.ProviderLocation, error)
}

// Geocoder turns a free-text address into coordinates.
type Geocoder interface {
	// Geocode returns a *catalog.AddressResolutionError when the address is
	// unknown or ambiguous; other errors are transport failures.
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}
