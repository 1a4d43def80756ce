package commands

import (
	"errors"

	"carveyor/internal/pkg/guard"
)

var ErrRemindWaitingOrdersCommandIsNotConstructed = errors.New(
	"RemindWaitingOrdersCommand must be created via NewRemindWaitingOrdersCommand constructor",
)

// RemindWaitingOrdersCommand notifies clients about orders that are still
// waiting for a worker or deliverer to claim them.
type RemindWaitingOrdersCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewRemindWaitingOrdersCommand creates a command for the reminder run.
func NewRemindWaitingOrdersCommand() RemindWaitingOrdersCommand {
	return RemindWaitingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RemindWaitingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemindWaitingOrdersCommandIsNotConstructed)
}
