package draft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/errs"
)

var (
	// ErrDraftIsNotConstructed is returned when a Draft was not created through
	// NewDraft or RestoreDraft.
	ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft constructor")

	// ErrSelectionOutOfRange is returned by Choose for an index outside 1..min(limit, candidates).
	ErrSelectionOutOfRange = errors.New("selection is out of range")
)

// Candidate is a location offered to the user with the menu item it would serve.
type Candidate struct {
	location catalog.Location
	item     catalog.MenuItem
}

// NewCandidate pairs a location with its representative item.
func NewCandidate(location catalog.Location, item catalog.MenuItem) (Candidate, error) {
	if err := errors.Join(location.Validate(), item.Validate()); err != nil {
		return Candidate{}, err
	}
	return Candidate{location: location, item: item}, nil
}

func (c Candidate) Location() catalog.Location { return c.location }
func (c Candidate) Item() catalog.MenuItem     { return c.item }

// Draft is the in-progress order of a single user.
type Draft struct {
	id       kernel.UUID
	userID   kernel.UUID
	phase    Phase
	address  string
	offers   []Candidate
	chosen   *catalog.Location
	selected []catalog.MenuItem
	version  int

	isConstructed bool
}

// NewDraft starts a draft in the Meal phase. It has never been stored, so its
// version is 0.
func NewDraft(id, userID kernel.UUID) (*Draft, error) {
	d := &Draft{phase: Meal, isConstructed: true}
	if err := errors.Join(d.setID(id), d.setUserID(userID)); err != nil {
		return nil, err
	}
	return d, nil
}

// RestoreDraft rebuilds a stored draft and re-checks its invariants.
func RestoreDraft(
	id, userID kernel.UUID,
	phase Phase,
	address string,
	offers []Candidate,
	chosen *catalog.Location,
	selected []catalog.MenuItem,
	version int,
) (*Draft, error) {
	d := &Draft{
		phase:         phase,
		address:       address,
		version:       version,
		isConstructed: true,
	}

	var errChosen, errVersion error
	if chosen != nil && phase != ConfirmOrRedo {
		errChosen = errs.NewValueIsInvalidErrorWithCause(
			"chosen location", fmt.Errorf("%s is not a valid phase to have a chosen location", phase))
	}
	if version < 0 {
		errVersion = errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}
	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		phase.Validate(),
		errChosen,
		errVersion,
	); err != nil {
		return nil, err
	}

	d.offers = append([]Candidate(nil), offers...)
	if chosen != nil {
		c := *chosen
		d.chosen = &c
	}
	for _, item := range selected {
		d.selectItem(item)
	}
	return d, nil
}

// Validate ensures the draft was built by a constructor.
func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

func (d *Draft) ID() kernel.UUID     { return d.id }
func (d *Draft) UserID() kernel.UUID { return d.userID }
func (d *Draft) Phase() Phase        { return d.phase }
func (d *Draft) Address() string     { return d.address }
func (d *Draft) Version() int        { return d.version }

// Candidates returns the offered candidates in display order.
func (d *Draft) Candidates() []Candidate {
	return append([]Candidate(nil), d.offers...)
}

// CandidateLocations returns the offered locations in display order.
func (d *Draft) CandidateLocations() []catalog.Location {
	locations := make([]catalog.Location, len(d.offers))
	for i, c := range d.offers {
		locations[i] = c.location
	}
	return locations
}

// CandidateItems returns the items parallel to CandidateLocations.
func (d *Draft) CandidateItems() []catalog.MenuItem {
	items := make([]catalog.MenuItem, len(d.offers))
	for i, c := range d.offers {
		items[i] = c.item
	}
	return items
}

// ChosenLocation returns the selected location, if any.
func (d *Draft) ChosenLocation() (catalog.Location, bool) {
	if d.chosen == nil {
		return catalog.Location{}, false
	}
	return *d.chosen, true
}

// SelectedItems returns the items that will become order lines.
func (d *Draft) SelectedItems() []catalog.MenuItem {
	return append([]catalog.MenuItem(nil), d.selected...)
}

// RequestAddress moves the draft to ProvidingAddress.
func (d *Draft) RequestAddress() {
	d.phase = ProvidingAddress
}

// OfferCandidates records the searched address and the candidates found for it,
// then waits for a selection.
func (d *Draft) OfferCandidates(address string, offers []Candidate) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if len(offers) == 0 {
		return errs.NewValueIsRequiredError("candidates")
	}
	d.address = address
	d.offers = append([]Candidate(nil), offers...)
	d.phase = ChoosingLocation
	return nil
}

// Choose selects the candidate at the 1-based index. Only indices up to
// min(limit, number of candidates) are accepted.
func (d *Draft) Choose(index, limit int) (Candidate, error) {
	if !d.phase.IsSelecting() {
		return Candidate{}, errs.NewValueIsInvalidErrorWithCause(
			"phase is invalid", fmt.Errorf("%s is not a valid phase to choose a location", d.phase))
	}

	upper := min(limit, len(d.offers))
	if index < 1 || index > upper {
		return Candidate{}, ErrSelectionOutOfRange
	}

	c := d.offers[index-1]
	loc := c.location
	d.chosen = &loc
	d.selectItem(c.item)
	d.phase = ConfirmOrRedo
	return c, nil
}

// ResetChoice drops the chosen location and selected items before a new search.
func (d *Draft) ResetChoice() {
	d.chosen = nil
	d.selected = nil
}

// AwaitAddress returns the draft to ProvidingAddress without candidates, used
// when a repeated search no longer finds anything.
func (d *Draft) AwaitAddress() {
	d.ResetChoice()
	d.offers = nil
	d.phase = ProvidingAddress
}

// AdvanceVersion is called by the draft store after a successful write.
func (d *Draft) AdvanceVersion() {
	d.version++
}

func (d *Draft) selectItem(item catalog.MenuItem) {
	for _, s := range d.selected {
		if s.ID().IsEqual(item.ID()) {
			return
		}
	}
	d.selected = append(d.selected, item)
}

func (d *Draft) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Draft) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.userID = id
	return nil
}
