package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/errs"
)

const (
	// MinHour and MaxHour bound the hour fields of a menu window.
	MinHour = 0
	MaxHour = 23
)

// MenuItem is a single orderable dish. Items are immutable snapshots of the
// catalog row at the time they were read.
type MenuItem struct {
	id    kernel.UUID
	name  string
	price kernel.Money
}

// NewMenuItem validates the identifier and requires a name.
func NewMenuItem(id kernel.UUID, name string, price kernel.Money) (MenuItem, error) {
	var errName error
	if strings.TrimSpace(name) == "" {
		errName = errs.NewValueIsRequiredError("menu item name")
	}
	if err := errors.Join(id.Validate(), errName); err != nil {
		return MenuItem{}, err
	}
	return MenuItem{id: id, name: name, price: price}, nil
}

func (i MenuItem) ID() kernel.UUID     { return i.id }
func (i MenuItem) Name() string        { return i.name }
func (i MenuItem) Price() kernel.Money { return i.price }

// Validate rejects zero-value items.
func (i MenuItem) Validate() error {
	return i.id.Validate()
}

// Menu is a set of items offered during an hour window.
type Menu struct {
	id        kernel.UUID
	name      string
	startHour int
	endHour   int
	items     []MenuItem
}

// NewMenu validates both hours against [MinHour, MaxHour]. Items keep the
// order they are passed in.
func NewMenu(id kernel.UUID, name string, startHour, endHour int, items []MenuItem) (*Menu, error) {
	var errStart, errEnd error
	if startHour < MinHour || startHour > MaxHour {
		errStart = errs.NewValueIsOutOfRangeError("start hour", startHour, MinHour, MaxHour)
	}
	if endHour < MinHour || endHour > MaxHour {
		errEnd = errs.NewValueIsOutOfRangeError("end hour", endHour, MinHour, MaxHour)
	}
	if err := errors.Join(id.Validate(), errStart, errEnd); err != nil {
		return nil, err
	}

	copied := make([]MenuItem, len(items))
	copy(copied, items)

	return &Menu{id: id, name: name, startHour: startHour, endHour: endHour, items: copied}, nil
}

func (m *Menu) ID() kernel.UUID { return m.id }
func (m *Menu) Name() string    { return m.name }
func (m *Menu) StartHour() int  { return m.startHour }
func (m *Menu) EndHour() int    { return m.endHour }

// Items returns a copy of the menu items in catalog order.
func (m *Menu) Items() []MenuItem {
	items := make([]MenuItem, len(m.items))
	copy(items, m.items)
	return items
}

// FirstItem returns the first listed item, if any.
func (m *Menu) FirstItem() (MenuItem, bool) {
	if len(m.items) == 0 {
		return MenuItem{}, false
	}
	return m.items[0], true
}

// IsActiveAt reports whether the wall-clock time of now falls in the window
// [start:00, end:00). Minutes are not stored, so only the hour of now matters.
//
// When start >= end the window wraps past midnight and is active when
// now >= start OR now < end; start == end therefore covers the whole day.
func (m *Menu) IsActiveAt(now time.Time) bool {
	hour := now.Hour()
	if m.startHour < m.endHour {
		return m.startHour <= hour && hour < m.endHour
	}
	return hour >= m.startHour || hour < m.endHour
}

// String is used in logs.
func (m *Menu) String() string {
	return fmt.Sprintf("%s [%02d:00-%02d:00)", m.name, m.startHour, m.endHour)
}
