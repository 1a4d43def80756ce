package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrRecordEvaluationArtifactCommandIsNotConstructed = errors.New(
	"RecordEvaluationArtifactCommand must be created via NewRecordEvaluationArtifactCommand constructor",
)

// RecordEvaluationArtifactCommand registers one piece of evaluation evidence
// (photo set, condition report) against an order in progress. At least one
// artifact must exist before the evaluation can finish.
type RecordEvaluationArtifactCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordEvaluationArtifactCommand creates a command for recording an artifact.
func NewRecordEvaluationArtifactCommand(orderID, actorID kernel.UUID) (RecordEvaluationArtifactCommand, error) {
	command := RecordEvaluationArtifactCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return RecordEvaluationArtifactCommand{}, err
	}

	command.orderID = orderID
	command.actorID = actorID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordEvaluationArtifactCommand) Validate() error {
	return c.guard.Validate(ErrRecordEvaluationArtifactCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c RecordEvaluationArtifactCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the acting worker's ID from the command.
func (c RecordEvaluationArtifactCommand) ActorID() kernel.UUID {
	return c.actorID
}
