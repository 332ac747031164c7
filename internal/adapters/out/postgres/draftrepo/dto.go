// Package draftrepo persists in-progress drafts, one row per user. Candidates,
// the chosen location and the selected items are stored as JSON snapshots next
// to the phase, and every write is checked against the row version.
package draftrepo

import (
	"time"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/draft"
	"github.com/u44592/hni/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DraftDTO is the drafts row.
type DraftDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Phase      int             `gorm:"type:smallint;not null"`
	Address    string          `gorm:"type:text"`
	Candidates []CandidateJSON `gorm:"type:jsonb;serializer:json"`
	Chosen     *LocationJSON   `gorm:"type:jsonb;serializer:json"`
	Selected   []MenuItemJSON  `gorm:"type:jsonb;serializer:json"`
	Version    int             `gorm:"type:int;not null"`
	UpdatedAt  time.Time       `gorm:"not null;index"`
}

func (DraftDTO) TableName() string {
	return "drafts"
}

type LocationJSON struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Name       string    `json:"name"`
	Address1   string    `json:"address1"`
	Address2   string    `json:"address2,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	Zip        string    `json:"zip,omitempty"`
}

type MenuItemJSON struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
}

type CandidateJSON struct {
	Location LocationJSON `json:"location"`
	Item     MenuItemJSON `json:"item"`
}

func fromDomain(d *draft.Draft) DraftDTO {
	candidates := make([]CandidateJSON, 0, len(d.Candidates()))
	for _, c := range d.Candidates() {
		candidates = append(candidates, CandidateJSON{
			Location: locationFromDomain(c.Location()),
			Item:     itemFromDomain(c.Item()),
		})
	}

	var chosen *LocationJSON
	if loc, ok := d.ChosenLocation(); ok {
		l := locationFromDomain(loc)
		chosen = &l
	}

	selected := make([]MenuItemJSON, 0, len(d.SelectedItems()))
	for _, item := range d.SelectedItems() {
		selected = append(selected, itemFromDomain(item))
	}

	return DraftDTO{
		ID:         d.ID().Bytes(),
		UserID:     d.UserID().Bytes(),
		Phase:      int(d.Phase()),
		Address:    d.Address(),
		Candidates: candidates,
		Chosen:     chosen,
		Selected:   selected,
		Version:    d.Version(),
	}
}

func toDomain(dto DraftDTO) (*draft.Draft, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	offers := make([]draft.Candidate, 0, len(dto.Candidates))
	for _, c := range dto.Candidates {
		loc, locErr := locationToDomain(c.Location)
		if locErr != nil {
			return nil, locErr
		}
		item, itemErr := itemToDomain(c.Item)
		if itemErr != nil {
			return nil, itemErr
		}
		candidate, candidateErr := draft.NewCandidate(loc, item)
		if candidateErr != nil {
			return nil, candidateErr
		}
		offers = append(offers, candidate)
	}

	var chosen *catalog.Location
	if dto.Chosen != nil {
		loc, locErr := locationToDomain(*dto.Chosen)
		if locErr != nil {
			return nil, locErr
		}
		chosen = &loc
	}

	selected := make([]catalog.MenuItem, 0, len(dto.Selected))
	for _, s := range dto.Selected {
		item, itemErr := itemToDomain(s)
		if itemErr != nil {
			return nil, itemErr
		}
		selected = append(selected, item)
	}

	return draft.RestoreDraft(id, userID, draft.Phase(dto.Phase), dto.Address, offers, chosen, selected, dto.Version)
}

func locationFromDomain(loc catalog.Location) LocationJSON {
	addr := loc.Address()
	return LocationJSON{
		ID:         loc.ID().Bytes(),
		ProviderID: loc.ProviderID().Bytes(),
		Name:       loc.Name(),
		Address1:   addr.Line1(),
		Address2:   addr.Line2(),
		City:       addr.City(),
		State:      addr.State(),
		Zip:        addr.Zip(),
	}
}

func locationToDomain(j LocationJSON) (catalog.Location, error) {
	id, err := kernel.UUIDFromBytes(j.ID[:])
	if err != nil {
		return catalog.Location{}, err
	}

	providerID, err := kernel.UUIDFromBytes(j.ProviderID[:])
	if err != nil {
		return catalog.Location{}, err
	}

	addr, err := kernel.NewAddress(j.Address1, j.Address2, j.City, j.State, j.Zip)
	if err != nil {
		return catalog.Location{}, err
	}

	return catalog.NewLocation(id, providerID, j.Name, addr)
}

func itemFromDomain(item catalog.MenuItem) MenuItemJSON {
	return MenuItemJSON{
		ID:         item.ID().Bytes(),
		Name:       item.Name(),
		PriceCents: item.Price().Cents(),
	}
}

func itemToDomain(j MenuItemJSON) (catalog.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(j.ID[:])
	if err != nil {
		return catalog.MenuItem{}, err
	}

	price, err := kernel.NewMoney(j.PriceCents)
	if err != nil {
		return catalog.MenuItem{}, err
	}

	return catalog.NewMenuItem(id, j.Name, price)
}
