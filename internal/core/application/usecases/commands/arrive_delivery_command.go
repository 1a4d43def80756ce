package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrArriveDeliveryCommandIsNotConstructed = errors.New(
	"ArriveDeliveryCommand must be created via NewArriveDeliveryCommand constructor",
)

// ArriveDeliveryCommand ends the delivery drive, recording the vehicle's
// odometer reading at arrival.
type ArriveDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actorID      kernel.UUID
	mileageAfter int64

	guard guard.ConstructorGuard
}

// NewArriveDeliveryCommand creates a command for ending the delivery drive.
func NewArriveDeliveryCommand(orderID, actorID kernel.UUID, mileageAfter int64) (ArriveDeliveryCommand, error) {
	command := ArriveDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return ArriveDeliveryCommand{}, err
	}

	command.orderID = orderID
	command.actorID = actorID
	command.mileageAfter = mileageAfter
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ArriveDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrArriveDeliveryCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c ArriveDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the arriving deliverer's ID from the command.
func (c ArriveDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// MileageAfter returns the odometer reading at arrival.
func (c ArriveDeliveryCommand) MileageAfter() int64 {
	return c.mileageAfter
}
