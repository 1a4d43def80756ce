package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrHandoverDeliveryCommandIsNotConstructed = errors.New(
	"HandoverDeliveryCommand must be created via NewHandoverDeliveryCommand constructor",
)

// HandoverDeliveryCommand releases the delivery leg of a combined order so a
// separate deliverer can claim it.
type HandoverDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewHandoverDeliveryCommand creates a command for handing over the delivery leg.
func NewHandoverDeliveryCommand(orderID, actorID kernel.UUID) (HandoverDeliveryCommand, error) {
	command := HandoverDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return HandoverDeliveryCommand{}, err
	}

	command.orderID = orderID
	command.actorID = actorID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c HandoverDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrHandoverDeliveryCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c HandoverDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the handing-over worker's ID from the command.
func (c HandoverDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}
