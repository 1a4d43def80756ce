package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrFinishEvaluationCommandIsNotConstructed = errors.New(
	"FinishEvaluationCommand must be created via NewFinishEvaluationCommand constructor",
)

// FinishEvaluationCommand closes the on-site evaluation or inspection phase.
type FinishEvaluationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinishEvaluationCommand creates a command for finishing the evaluation.
func NewFinishEvaluationCommand(orderID, actorID kernel.UUID) (FinishEvaluationCommand, error) {
	command := FinishEvaluationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return FinishEvaluationCommand{}, err
	}

	command.orderID = orderID
	command.actorID = actorID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishEvaluationCommand) Validate() error {
	return c.guard.Validate(ErrFinishEvaluationCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c FinishEvaluationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the acting worker's ID from the command.
func (c FinishEvaluationCommand) ActorID() kernel.UUID {
	return c.actorID
}
