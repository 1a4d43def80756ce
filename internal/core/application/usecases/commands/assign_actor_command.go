package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrAssignActorCommandIsNotConstructed = errors.New(
	"AssignActorCommand must be created via NewAssignActorCommand constructor",
)

// AssignActorCommand represents a worker claiming a waiting order. Whether
// the claim is for the evaluation work or the delivery leg follows from the
// order's current waiting status; the assignment fee is escrowed from the
// claimant's balance in the same transaction.
//
// Example:
//
//	cmd, _ := NewAssignActorCommand(orderID, workerID)
//	handler := NewAssignActorCommandHandler(uowFactory, notifier)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ledger.ErrInsufficientBalance):
//	    // claimant cannot cover the fee
//	case errors.Is(err, actor.ErrInsuranceExpired):
//	    // claimant's insurance lapsed
//	}
type AssignActorCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignActorCommand creates a command for an order claim.
func NewAssignActorCommand(orderID, actorID kernel.UUID) (AssignActorCommand, error) {
	command := AssignActorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActorID(actorID),
	); err != nil {
		return AssignActorCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignActorCommand) Validate() error {
	return c.guard.Validate(ErrAssignActorCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c AssignActorCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the claiming actor's ID from the command.
func (c AssignActorCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AssignActorCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *AssignActorCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}
