package commands

import (
	"context"
)

// ExpireDraftsCommandHandler deletes abandoned drafts.
type ExpireDraftsCommandHandler struct {
	uowFactory DraftUoWFactory
}

func NewExpireDraftsCommandHandler(uowFactory DraftUoWFactory) ExpireDraftsCommandHandler {
	return ExpireDraftsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of drafts removed.
func (h ExpireDraftsCommandHandler) Handle(ctx context.Context, cmd ExpireDraftsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.DraftRepository().DeleteIdleSince(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
