package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/draft"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
	"github.com/u44592/hni/internal/core/ports"
)

// Commands recognized in the conversation, matched case-insensitively.
const (
	CommandMeal    = "MEAL"
	CommandOrder   = "ORDER"
	CommandEndMeal = "ENDMEAL"
	CommandStatus  = "STATUS"
	CommandConfirm = "CONFIRM"
	CommandRedo    = "REDO"
)

// ErrPhaseIsUnknown is returned for a stored draft whose phase the engine
// cannot act on.
var ErrPhaseIsUnknown = errors.New("draft phase is unknown")

// OrderHistory is the read side of the order ledger the engine needs for STATUS.
type OrderHistory interface {
	RecentForUser(ctx context.Context, userID kernel.UUID, since time.Time) ([]*order.Order, error)
}

// Effect tells the caller what to do with the draft after a turn.
type Effect int

const (
	// EffectNone persists nothing: the user was idle and stays idle.
	EffectNone Effect = iota
	// EffectSave stores Decision.Draft.
	EffectSave
	// EffectDelete removes Decision.Draft, after adding Decision.Order if set.
	EffectDelete
)

// Outcome labels what happened in a turn, for logs and metrics.
type Outcome string

const (
	OutcomeAddressRequested  Outcome = "address_requested"
	OutcomeNotUnderstood     Outcome = "not_understood"
	OutcomeNothingToCancel   Outcome = "nothing_to_cancel"
	OutcomeCancelled         Outcome = "cancelled"
	OutcomeStatus            Outcome = "status"
	OutcomeAddressRejected   Outcome = "address_rejected"
	OutcomeNoProviders       Outcome = "no_providers"
	OutcomeNoActiveMenus     Outcome = "no_active_menus"
	OutcomeCandidatesOffered Outcome = "candidates_offered"
	OutcomeInvalidSelection  Outcome = "invalid_selection"
	OutcomeLocationChosen    Outcome = "location_chosen"
	OutcomeAwaitingConfirm   Outcome = "awaiting_confirmation"
	OutcomeOrderConfirmed    Outcome = "order_confirmed"
)

// Decision is the result of one turn.
type Decision struct {
	Reply   string
	Effect  Effect
	Outcome Outcome

	// Draft is the draft to save or delete. Nil for EffectNone.
	Draft *draft.Draft

	// Order is the finalized order to add before the draft is deleted.
	Order *order.Order
}

// Conversation decides conversation turns.
//
// Example:
//
//	conv := services.NewConversation(catalog, uow.OrderRepository(), policy, clock, tz)
//	decision, err := conv.Decide(ctx, userID, current, "MEAL")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(decision.Reply) // "Please provide your address or ENDMEAL to quit"
type Conversation struct {
	catalog  ports.CatalogGateway
	history  OrderHistory
	policy   ConversationPolicy
	clock    func() time.Time
	location *time.Location
}

// NewConversation wires the engine. A nil clock means time.Now, a nil location
// means time.Local.
func NewConversation(
	catalog ports.CatalogGateway,
	history OrderHistory,
	policy ConversationPolicy,
	clock func() time.Time,
	location *time.Location,
) Conversation {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return Conversation{
		catalog:  catalog,
		history:  history,
		policy:   policy,
		clock:    clock,
		location: location,
	}
}

// Decide runs one turn for userID. current is the user's stored draft or nil
// when the user is idle; it is modified in place when the turn advances it.
// text is matched after trimming.
func (c Conversation) Decide(
	ctx context.Context,
	userID kernel.UUID,
	current *draft.Draft,
	text string,
) (Decision, error) {
	if err := userID.Validate(); err != nil {
		return Decision{}, err
	}
	text = strings.TrimSpace(text)

	if current == nil {
		return c.decideIdle(ctx, userID, text)
	}
	if err := current.Validate(); err != nil {
		return Decision{}, err
	}

	if strings.EqualFold(text, CommandEndMeal) {
		return Decision{Reply: ReplyCancelled, Effect: EffectDelete, Outcome: OutcomeCancelled, Draft: current}, nil
	}

	switch current.Phase() {
	case draft.Meal:
		return c.requestMeal(current, text), nil
	case draft.ProvidingAddress:
		return c.findNearbyMeals(ctx, current, text)
	case draft.ChoosingLocation, draft.ChoosingMenuItem:
		return c.chooseLocation(current, text), nil
	case draft.ConfirmOrRedo:
		return c.confirmOrRedo(ctx, current, text)
	default:
		return Decision{}, fmt.Errorf("%w: %s", ErrPhaseIsUnknown, current.Phase())
	}
}

func (c Conversation) decideIdle(ctx context.Context, userID kernel.UUID, text string) (Decision, error) {
	switch {
	case strings.EqualFold(text, CommandEndMeal):
		return Decision{Reply: ReplyNothingToCancel, Effect: EffectNone, Outcome: OutcomeNothingToCancel}, nil
	case strings.EqualFold(text, CommandStatus):
		reply, err := c.orderStatus(ctx, userID)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Reply: reply, Effect: EffectNone, Outcome: OutcomeStatus}, nil
	case isMealRequest(text):
		d, err := draft.NewDraft(kernel.NewUUID(), userID)
		if err != nil {
			return Decision{}, err
		}
		return c.requestMeal(d, text), nil
	default:
		return Decision{Reply: ReplyNotUnderstood, Effect: EffectNone, Outcome: OutcomeNotUnderstood}, nil
	}
}

// requestMeal advances a draft out of the MEAL phase whatever the text was.
func (c Conversation) requestMeal(d *draft.Draft, text string) Decision {
	d.RequestAddress()
	if isMealRequest(text) {
		return Decision{Reply: ReplyProvideAddress, Effect: EffectSave, Outcome: OutcomeAddressRequested, Draft: d}
	}
	return Decision{Reply: ReplyNotUnderstood, Effect: EffectSave, Outcome: OutcomeNotUnderstood, Draft: d}
}

func (c Conversation) findNearbyMeals(ctx context.Context, d *draft.Draft, address string) (Decision, error) {
	offers, failure, err := c.search(ctx, address)
	if err != nil {
		return Decision{}, err
	}
	if failure != nil {
		return Decision{Reply: failure.reply, Effect: EffectSave, Outcome: failure.outcome, Draft: d}, nil
	}

	if err = d.OfferCandidates(address, offers); err != nil {
		return Decision{}, err
	}
	return Decision{
		Reply:   RenderCandidates(d),
		Effect:  EffectSave,
		Outcome: OutcomeCandidatesOffered,
		Draft:   d,
	}, nil
}

func (c Conversation) chooseLocation(d *draft.Draft, text string) Decision {
	index, err := strconv.Atoi(text)
	if err == nil {
		var chosen draft.Candidate
		if chosen, err = d.Choose(index, c.policy.MaxCandidates); err == nil {
			return Decision{
				Reply:   chosenReply(chosen.Item().Name(), chosen.Location().Name()),
				Effect:  EffectSave,
				Outcome: OutcomeLocationChosen,
				Draft:   d,
			}
		}
	}

	return Decision{
		Reply:   ReplyInvalidInput + RenderCandidates(d),
		Effect:  EffectSave,
		Outcome: OutcomeInvalidSelection,
		Draft:   d,
	}
}

func (c Conversation) confirmOrRedo(ctx context.Context, d *draft.Draft, text string) (Decision, error) {
	switch strings.ToUpper(text) {
	case CommandConfirm:
		return c.confirm(d)
	case CommandRedo:
		return c.redo(ctx, d)
	default:
		return Decision{Reply: ReplyConfirmOrRedo, Effect: EffectSave, Outcome: OutcomeAwaitingConfirm, Draft: d}, nil
	}
}

func (c Conversation) confirm(d *draft.Draft) (Decision, error) {
	location, ok := d.ChosenLocation()
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s draft has no chosen location", ErrPhaseIsUnknown, d.Phase())
	}

	finalized, err := order.NewOrder(kernel.NewUUID(), d.UserID(), c.now(), location, d.SelectedItems())
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Reply:   ReplyOrderConfirmed,
		Effect:  EffectDelete,
		Outcome: OutcomeOrderConfirmed,
		Draft:   d,
		Order:   finalized,
	}, nil
}

// redo searches the stored address again. When nothing is found any more the
// draft goes back to waiting for an address.
func (c Conversation) redo(ctx context.Context, d *draft.Draft) (Decision, error) {
	d.ResetChoice()

	offers, failure, err := c.search(ctx, d.Address())
	if err != nil {
		return Decision{}, err
	}
	if failure != nil {
		d.AwaitAddress()
		return Decision{Reply: failure.reply, Effect: EffectSave, Outcome: failure.outcome, Draft: d}, nil
	}

	if err = d.OfferCandidates(d.Address(), offers); err != nil {
		return Decision{}, err
	}
	return Decision{
		Reply:   RenderCandidates(d),
		Effect:  EffectSave,
		Outcome: OutcomeCandidatesOffered,
		Draft:   d,
	}, nil
}

type searchFailure struct {
	reply   string
	outcome Outcome
}

// search finds the locations around address that serve something right now,
// each paired with the first item of its active menu, in catalog order.
// Address and availability problems come back as a searchFailure; err is
// reserved for infrastructure failures.
func (c Conversation) search(ctx context.Context, address string) ([]draft.Candidate, *searchFailure, error) {
	nearby, err := c.catalog.FindNearby(ctx, address, c.policy.SearchRadiusMiles)
	var resolution *catalog.AddressResolutionError
	if errors.As(err, &resolution) {
		return nil, &searchFailure{reply: resolution.Message, outcome: OutcomeAddressRejected}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if len(nearby) == 0 {
		return nil, &searchFailure{reply: ReplyNoProviders, outcome: OutcomeNoProviders}, nil
	}

	now := c.now()
	offers := make([]draft.Candidate, 0, len(nearby))
	for _, location := range nearby {
		item, ok := location.ActiveMenuFirstItem(now)
		if !ok {
			continue
		}
		candidate, candidateErr := draft.NewCandidate(location.Location, item)
		if candidateErr != nil {
			return nil, nil, candidateErr
		}
		offers = append(offers, candidate)
	}
	if len(offers) == 0 {
		return nil, &searchFailure{reply: ReplyNoActiveMenus, outcome: OutcomeNoActiveMenus}, nil
	}

	return offers, nil, nil
}

// orderStatus reports on the newest order the user placed today.
func (c Conversation) orderStatus(ctx context.Context, userID kernel.UUID) (string, error) {
	now := c.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.location)

	orders, err := c.history.RecentForUser(ctx, userID, startOfDay)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return ReplyStatusNone, nil
	}

	latest := slices.MaxFunc(orders, func(a, b *order.Order) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	switch {
	case latest.Status() == order.Open:
		return ReplyStatusOpen, nil
	case !latest.Status().IsClosed():
		return ReplyStatusOrdered + latest.Location().Address().Line1(), nil
	default:
		return ReplyStatusClosed, nil
	}
}

func (c Conversation) now() time.Time {
	return c.clock().In(c.location)
}

func isMealRequest(text string) bool {
	return strings.EqualFold(text, CommandMeal) || strings.EqualFold(text, CommandOrder)
}
