package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrStartWorkCommandIsNotConstructed = errors.New(
	"StartWorkCommand must be created via NewStartWorkCommand constructor",
)

// StartWorkCommand represents the assigned worker beginning the evaluation
// or inspection on site.
type StartWorkCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartWorkCommand creates a command for starting the work.
func NewStartWorkCommand(orderID, actorID kernel.UUID) (StartWorkCommand, error) {
	command := StartWorkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return StartWorkCommand{}, err
	}

	command.orderID = orderID
	command.actorID = actorID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartWorkCommand) Validate() error {
	return c.guard.Validate(ErrStartWorkCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c StartWorkCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the acting worker's ID from the command.
func (c StartWorkCommand) ActorID() kernel.UUID {
	return c.actorID
}
