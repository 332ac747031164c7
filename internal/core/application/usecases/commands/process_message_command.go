package commands

import (
	"errors"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/guard"
)

var ErrProcessMessageCommandIsNotConstructed = errors.New(
	"ProcessMessageCommand must be created via NewProcessMessageCommand constructor",
)

// ProcessMessageCommand is one conversation turn of a known user.
//
// Example:
//
//	cmd, err := NewProcessMessageCommand(user.ID(), "MEAL")
//	if err != nil {
//	    return err
//	}
//	reply, err := handler.Handle(ctx, cmd)
type ProcessMessageCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	text   string

	guard guard.ConstructorGuard
}

// NewProcessMessageCommand requires a valid user id. Any text is accepted,
// including the empty string.
func NewProcessMessageCommand(userID kernel.UUID, text string) (ProcessMessageCommand, error) {
	cmd := ProcessMessageCommand{
		text:  text,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setUserID(userID); err != nil {
		return ProcessMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessMessageCommand) Validate() error {
	return c.guard.Validate(ErrProcessMessageCommandIsNotConstructed)
}

func (c ProcessMessageCommand) UserID() kernel.UUID { return c.userID }
func (c ProcessMessageCommand) Text() string        { return c.text }

func (c *ProcessMessageCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
