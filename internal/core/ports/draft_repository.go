// Package ports defines the contracts between the conversation core and the
// infrastructure that stores drafts and orders, resolves users and searches
// the provider catalog.
package ports

import (
	"context"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/draft"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
)

// DraftRepository is the draft store: at most one draft per user.
type DraftRepository interface {
	// GetByUser returns the user's draft, or an errs.ObjectNotFoundError when
	// the user is idle.
	GetByUser(ctx context.Context, userID kernel.UUID) (*draft.Draft, error)

	// Save inserts a new draft (version 0) or updates a stored one. The write
	// succeeds only if the stored version still equals d.Version(); otherwise it
	// fails with errs.VersionIsInvalidError. On success d.Version() advances.
	Save(ctx context.Context, d *draft.Draft) error

	// Delete removes the draft under the same version check as Save.
	Delete(ctx context.Context, d *draft.Draft) error

	// DeleteIdleSince removes drafts not written since cutoff and returns how
	// many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}
