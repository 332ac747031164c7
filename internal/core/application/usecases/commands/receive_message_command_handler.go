package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/u44592/hni/internal/core/ports"
	"github.com/u44592/hni/internal/pkg/errs"
)

// ErrUserNotRegistered is returned for messages from unknown phone numbers. Its
// text is the reply the sender should see.
var ErrUserNotRegistered = errors.New("Please sign up first by saying REGISTER") //nolint:staticcheck // shown to the user

// MessageProcessor runs a conversation turn for a known user.
type MessageProcessor interface {
	Handle(ctx context.Context, cmd ProcessMessageCommand) (string, error)
}

// ReceiveMessageCommandHandler resolves the sender and hands the turn to the
// conversation. The conversation is never reached for unknown senders.
type ReceiveMessageCommandHandler struct {
	users     ports.UserDirectory
	processor MessageProcessor
	logger    *slog.Logger
}

func NewReceiveMessageCommandHandler(
	users ports.UserDirectory,
	processor MessageProcessor,
	logger *slog.Logger,
) ReceiveMessageCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ReceiveMessageCommandHandler{
		users:     users,
		processor: processor,
		logger:    logger.With("component", "inbound"),
	}
}

// Handle returns the reply for the message, or ErrUserNotRegistered.
func (h ReceiveMessageCommandHandler) Handle(ctx context.Context, cmd ReceiveMessageCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	u, err := h.users.GetByMobilePhone(ctx, cmd.Phone())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.Error("failed to look up user by phone", "phone", cmd.Phone())
		return "", ErrUserNotRegistered
	}
	if err != nil {
		return "", err
	}

	turn, err := NewProcessMessageCommand(u.ID(), strings.TrimSpace(cmd.Text()))
	if err != nil {
		return "", err
	}

	return h.processor.Handle(ctx, turn)
}
