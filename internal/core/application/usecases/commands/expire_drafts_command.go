package commands

import (
	"errors"
	"time"

	"github.com/u44592/hni/internal/pkg/errs"
	"github.com/u44592/hni/internal/pkg/guard"
)

var ErrExpireDraftsCommandIsNotConstructed = errors.New(
	"ExpireDraftsCommand must be created via NewExpireDraftsCommand constructor",
)

// ExpireDraftsCommand removes drafts nobody touched since the cutoff.
type ExpireDraftsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewExpireDraftsCommand computes the cutoff as now minus ttl.
func NewExpireDraftsCommand(now time.Time, ttl time.Duration) (ExpireDraftsCommand, error) {
	if ttl <= 0 {
		return ExpireDraftsCommand{}, errs.NewValueIsOutOfRangeError("draft ttl", ttl, time.Duration(1), "unbounded")
	}
	if now.IsZero() {
		return ExpireDraftsCommand{}, errs.NewValueIsRequiredError("now")
	}

	return ExpireDraftsCommand{
		cutoff: now.Add(-ttl),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireDraftsCommand) Validate() error {
	return c.guard.Validate(ErrExpireDraftsCommandIsNotConstructed)
}

func (c ExpireDraftsCommand) Cutoff() time.Time { return c.cutoff }
