package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/draft"
	"github.com/u44592/hni/internal/core/domain/services"
	"github.com/u44592/hni/internal/core/ports"
	"github.com/u44592/hni/internal/pkg/errs"
)

// IdlePhase labels turns of users without a draft.
const IdlePhase = "IDLE"

// ErrConcurrentTurn is returned when another turn of the same user changed the
// draft first. Nothing was written; the message can be sent again.
var ErrConcurrentTurn = errors.New("concurrent turn for the same user")

// TurnRecorder observes finished turns.
type TurnRecorder interface {
	RecordTurn(phase string, outcome services.Outcome)
	RecordOrderFinalized()
}

type nopTurnRecorder struct{}

func (nopTurnRecorder) RecordTurn(string, services.Outcome) {}
func (nopTurnRecorder) RecordOrderFinalized()               {}

// ProcessMessageCommandHandler runs one conversation turn: it holds the user's
// turn lock, loads the draft, lets the conversation engine decide, and applies
// the decision in a single transaction.
//
// Example:
//
//	handler := NewProcessMessageCommandHandler(uowFactory, catalog, locker, ProcessMessageOptions{})
//	cmd, _ := NewProcessMessageCommand(userID, "1600 Farnam St")
//
//	reply, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrConcurrentTurn):
//	    // ask the user to resend
//	case err != nil:
//	    return err
//	}
//	fmt.Println(reply)
type ProcessMessageCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.CatalogGateway
	locker     ports.TurnLocker
	policy     services.ConversationPolicy
	clock      func() time.Time
	location   *time.Location
	recorder   TurnRecorder
	logger     *slog.Logger
}

// ProcessMessageOptions holds the optional collaborators of the handler. Zero
// values fall back to the default policy, time.Now, time.Local, no metrics and
// slog.Default().
type ProcessMessageOptions struct {
	Policy   services.ConversationPolicy
	Clock    func() time.Time
	Location *time.Location
	Recorder TurnRecorder
	Logger   *slog.Logger
}

func NewProcessMessageCommandHandler(
	uowFactory UoWFactory,
	catalog ports.CatalogGateway,
	locker ports.TurnLocker,
	opts ProcessMessageOptions,
) ProcessMessageCommandHandler {
	if opts.Policy == (services.ConversationPolicy{}) {
		opts.Policy = services.DefaultConversationPolicy()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Recorder == nil {
		opts.Recorder = nopTurnRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return ProcessMessageCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		locker:     locker,
		policy:     opts.Policy,
		clock:      opts.Clock,
		location:   opts.Location,
		recorder:   opts.Recorder,
		logger:     opts.Logger.With("component", "conversation"),
	}
}

// Handle returns the reply for the turn. Errors mean the turn had no effect.
func (h ProcessMessageCommandHandler) Handle(ctx context.Context, cmd ProcessMessageCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	unlock, err := h.locker.Lock(ctx, cmd.UserID())
	if err != nil {
		return "", err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drafts := uow.DraftRepository()
	orders := uow.OrderRepository()

	current, err := drafts.GetByUser(ctx, cmd.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		current, err = nil, nil
	}
	if err != nil {
		return "", err
	}

	phase := phaseOf(current)
	conversation := services.NewConversation(h.catalog, orders, h.policy, h.clock, h.location)
	decision, err := conversation.Decide(ctx, cmd.UserID(), current, cmd.Text())
	if err != nil {
		return "", err
	}

	if err = h.apply(ctx, drafts, orders, decision); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return "", fmt.Errorf("%w: %w", ErrConcurrentTurn, err)
		}
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.recorder.RecordTurn(phase, decision.Outcome)
	if decision.Order != nil {
		h.recorder.RecordOrderFinalized()
		h.logger.Info("order confirmed",
			"order_id", decision.Order.ID().String(),
			"user_id", cmd.UserID().String(),
			"location", decision.Order.Location().Name(),
			"subtotal", decision.Order.Subtotal().String(),
		)
	}
	h.logger.Debug("turn processed",
		"user_id", cmd.UserID().String(),
		"phase", phase,
		"outcome", string(decision.Outcome),
	)

	return decision.Reply, nil
}

func (h ProcessMessageCommandHandler) apply(
	ctx context.Context,
	drafts ports.DraftRepository,
	orders ports.OrderRepository,
	decision services.Decision,
) error {
	switch decision.Effect {
	case services.EffectSave:
		return drafts.Save(ctx, decision.Draft)
	case services.EffectDelete:
		if decision.Order != nil {
			if err := orders.Add(ctx, decision.Order); err != nil {
				return err
			}
		}
		return drafts.Delete(ctx, decision.Draft)
	default:
		return nil
	}
}

func phaseOf(d *draft.Draft) string {
	if d == nil {
		return IdlePhase
	}
	return d.Phase().String()
}
