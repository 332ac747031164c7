package ports

import (
	"context"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
)

// TurnLocker serializes conversation turns of the same user.
type TurnLocker interface {
	// Lock blocks until the user's turn lock is held or ctx is done. The
	// returned function releases it.
	Lock(ctx context.Context, userID kernel.UUID) (unlock func(), err error)
}
