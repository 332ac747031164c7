package ports

import (
	"context"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/user"
)

// UserDirectory looks up registered users.
type UserDirectory interface {
	// GetByMobilePhone returns the first user registered with phone, or
	// errs.ObjectNotFoundError.
	GetByMobilePhone(ctx context.Context, phone string) (*user.User, error)

	// Get returns the user with id, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
