package kernel

import (
	"strings"

	"github.com/u44592/hni/internal/pkg/errs"
	"github.com/u44592/hni/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned for a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is the postal address of a provider location. Line1 is mandatory,
// the remaining parts are optional.
type Address struct { //nolint:recvcheck //using for validation
	line1 string
	line2 string
	city  string
	state string
	zip   string

	guard guard.ConstructorGuard
}

// NewAddress trims every part and requires a non-blank first line.
func NewAddress(line1, line2, city, state, zip string) (Address, error) {
	line1 = strings.TrimSpace(line1)
	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("address line 1")
	}

	return Address{
		line1: line1,
		line2: strings.TrimSpace(line2),
		city:  strings.TrimSpace(city),
		state: strings.TrimSpace(state),
		zip:   strings.TrimSpace(zip),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string { return a.line1 }
func (a Address) Line2() string { return a.line2 }
func (a Address) City() string  { return a.city }
func (a Address) State() string { return a.state }
func (a Address) Zip() string   { return a.zip }

// Street returns line1 followed by line2 when line2 is present, the form used
// in SMS replies.
func (a Address) Street() string {
	if a.line2 == "" {
		return a.line1
	}
	return a.line1 + " " + a.line2
}
