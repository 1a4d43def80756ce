package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrDepartDeliveryCommandIsNotConstructed = errors.New(
	"DepartDeliveryCommand must be created via NewDepartDeliveryCommand constructor",
)

// DepartDeliveryCommand starts the delivery drive, recording the vehicle's
// odometer reading at departure.
type DepartDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actorID       kernel.UUID
	mileageBefore int64

	guard guard.ConstructorGuard
}

// NewDepartDeliveryCommand creates a command for starting the delivery drive.
func NewDepartDeliveryCommand(orderID, actorID kernel.UUID, mileageBefore int64) (DepartDeliveryCommand, error) {
	command := DepartDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return DepartDeliveryCommand{}, err
	}

	command.orderID = orderID
	command.actorID = actorID
	command.mileageBefore = mileageBefore
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DepartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDepartDeliveryCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c DepartDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the departing deliverer's ID from the command.
func (c DepartDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// MileageBefore returns the odometer reading at departure.
func (c DepartDeliveryCommand) MileageBefore() int64 {
	return c.mileageBefore
}
