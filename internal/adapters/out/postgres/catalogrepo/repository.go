package catalogrepo

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// milesPerDegreeLat is used to size the bounding box that prefilters
// locations before the exact distance check.
const milesPerDegreeLat = 69.0

var _ ports.CatalogGateway = (*GormCatalogRepository)(nil)

// GormCatalogRepository implements ports.CatalogGateway on top of the catalog
// tables and a Geocoder.
type GormCatalogRepository struct {
	db       *gorm.DB
	geocoder ports.Geocoder
}

func NewGormCatalogRepository(db *gorm.DB, geocoder ports.Geocoder) *GormCatalogRepository {
	return &GormCatalogRepository{
		db:       db,
		geocoder: geocoder,
	}
}

// FindNearby geocodes address and returns locations within radiusMiles of it,
// nearest first. Geocoder errors, including *catalog.AddressResolutionError,
// are returned unchanged.
func (r *GormCatalogRepository) FindNearby(
	ctx context.Context,
	address string,
	radiusMiles float64,
) ([]*catalog.ProviderLocation, error) {
	origin, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	candidates, err := r.locationsInBox(ctx, origin, radiusMiles)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		dto      ProviderLocationDTO
		distance float64
	}
	inRange := make([]ranked, 0, len(candidates))
	for _, dto := range candidates {
		point, pointErr := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		if d := origin.DistanceMiles(point); d <= radiusMiles {
			inRange = append(inRange, ranked{dto: dto, distance: d})
		}
	}
	if len(inRange) == 0 {
		return []*catalog.ProviderLocation{}, nil
	}
	slices.SortStableFunc(inRange, func(a, b ranked) int {
		return cmp.Compare(a.distance, b.distance)
	})

	providerIDs := make([]uuid.UUID, 0, len(inRange))
	for _, rk := range inRange {
		if !slices.Contains(providerIDs, rk.dto.ProviderID) {
			providerIDs = append(providerIDs, rk.dto.ProviderID)
		}
	}
	menus, err := r.menusByProvider(ctx, providerIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*catalog.ProviderLocation, 0, len(inRange))
	for _, rk := range inRange {
		loc, locErr := locationToDomain(rk.dto, menus[rk.dto.ProviderID])
		if locErr != nil {
			return nil, locErr
		}
		result = append(result, loc)
	}
	return result, nil
}

func (r *GormCatalogRepository) locationsInBox(
	ctx context.Context,
	origin kernel.GeoPoint,
	radiusMiles float64,
) ([]ProviderLocationDTO, error) {
	dLat := radiusMiles / milesPerDegreeLat
	query := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", origin.Latitude()-dLat, origin.Latitude()+dLat)

	// Near the poles a degree of longitude shrinks to nothing; skip the
	// longitude bound there and rely on the exact distance check.
	if cos := math.Cos(origin.Latitude() * math.Pi / 180); cos > 0.01 {
		dLng := radiusMiles / (milesPerDegreeLat * cos)
		query = query.Where("longitude BETWEEN ? AND ?", origin.Longitude()-dLng, origin.Longitude()+dLng)
	}

	var dtos []ProviderLocationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}
	return dtos, nil
}

// menusByProvider loads menus with their items, both in catalog order.
func (r *GormCatalogRepository) menusByProvider(
	ctx context.Context,
	providerIDs []uuid.UUID,
) (map[uuid.UUID][]*catalog.Menu, error) {
	var dtos []MenuDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("provider_id IN ?", providerIDs).
		Order("provider_id").
		Order("position").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	menus := make(map[uuid.UUID][]*catalog.Menu, len(providerIDs))
	for _, dto := range dtos {
		m, menuErr := menuToDomain(dto)
		if menuErr != nil {
			return nil, menuErr
		}
		menus[dto.ProviderID] = append(menus[dto.ProviderID], m)
	}
	return menus, nil
}
