package commands

import (
	"errors"

	"github.com/u44592/hni/internal/core/domain/model/user"
	"github.com/u44592/hni/internal/pkg/guard"
)

var ErrReceiveMessageCommandIsNotConstructed = errors.New(
	"ReceiveMessageCommand must be created via NewReceiveMessageCommand constructor",
)

// ReceiveMessageCommand is an inbound SMS before the sender is known.
type ReceiveMessageCommand struct { //nolint:recvcheck //using for validation
	phone string
	text  string

	guard guard.ConstructorGuard
}

// NewReceiveMessageCommand normalizes the sender's phone number.
func NewReceiveMessageCommand(phone, text string) (ReceiveMessageCommand, error) {
	cmd := ReceiveMessageCommand{
		text:  text,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPhone(phone); err != nil {
		return ReceiveMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveMessageCommand) Validate() error {
	return c.guard.Validate(ErrReceiveMessageCommandIsNotConstructed)
}

// Phone returns the normalized phone number.
func (c ReceiveMessageCommand) Phone() string { return c.phone }

func (c ReceiveMessageCommand) Text() string { return c.text }

func (c *ReceiveMessageCommand) setPhone(phone string) error {
	normalized, err := user.NormalizePhone(phone)
	if err != nil {
		return err
	}

	c.phone = normalized
	return nil
}
