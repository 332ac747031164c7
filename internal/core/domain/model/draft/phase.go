package draft

import (
	"fmt"

	"github.com/u44592/hni/internal/pkg/errs"
)

// Phase is the position of a draft in the conversation. The absence of a
// draft is the implicit idle state.
//
//	idle ──MEAL──> Meal ──> ProvidingAddress ──address──> ChoosingLocation ──n──> ConfirmOrRedo
//	                              ▲                              ▲                     │
//	                              └──────── search fails ────────┴──────── REDO ───────┘
//
// ChoosingMenuItem is reserved: a location and its single item are chosen together.
type Phase int

const (
	// UnknownPhase catches uninitialized values.
	UnknownPhase Phase = iota
	Meal
	ProvidingAddress
	ChoosingLocation
	ChoosingMenuItem
	ConfirmOrRedo
)

func getPhaseStrings() map[Phase]string {
	return map[Phase]string{
		UnknownPhase:     "UNKNOWN",
		Meal:             "MEAL",
		ProvidingAddress: "PROVIDING_ADDRESS",
		ChoosingLocation: "CHOOSING_LOCATION",
		ChoosingMenuItem: "CHOOSING_MENU_ITEM",
		ConfirmOrRedo:    "CONFIRM_OR_REDO",
	}
}

// String implements fmt.Stringer; invalid values render as "UNKNOWN".
func (p Phase) String() string {
	if str, ok := getPhaseStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects UnknownPhase and out-of-range values.
func (p Phase) Validate() error {
	if p <= UnknownPhase || p > ConfirmOrRedo {
		return errs.NewValueIsInvalidErrorWithCause("phase is invalid", fmt.Errorf("%d is not a valid phase", p))
	}
	return nil
}

// IsSelecting reports whether the draft waits for a candidate number.
func (p Phase) IsSelecting() bool {
	return p == ChoosingLocation || p == ChoosingMenuItem
}
