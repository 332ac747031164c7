package order

import (
	"fmt"

	"github.com/u44592/hni/internal/pkg/errs"
)

// Status is the fulfillment state of a finalized order.
//
// State transitions:
//
//	Open ──> Ordered ──> Closed
//	  │                    ▲
//	  └────────────────────┘
//
// Transitions are driven by provider fulfillment, never by the conversation.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Open is the status of a freshly confirmed order.
	Open

	// Ordered means the provider accepted the order and is preparing it.
	Ordered

	// Closed is final: picked up, cancelled or otherwise done.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Open:    "Open",
		Ordered: "Ordered",
		Closed:  "Closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:    "Open",
		Ordered: "Ordered",
		Closed:  "Closed",
	}
}

// ParseStatus maps a case-sensitive status name back to a valid Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values read from persistence or the API.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsClosed reports whether the order needs no further attention.
func (s Status) IsClosed() bool {
	return s == Closed
}

// Place transitions Open -> Ordered.
func (s Status) Place() (Status, error) {
	if s != Open {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to place", s.String()),
		)
	}
	return Ordered, nil
}

// Close transitions Open or Ordered -> Closed.
func (s Status) Close() (Status, error) {
	if s != Open && s != Ordered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to close", s.String()),
		)
	}
	return Closed, nil
}

// TransitionTo applies the transition that leads to target.
func (s Status) TransitionTo(target Status) (Status, error) {
	switch target {
	case Ordered:
		return s.Place()
	case Closed:
		return s.Close()
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot transition from %s to %s", s.String(), target.String()),
		)
	}
}
