package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/pkg/guard"
)

var ErrAddAdHocCostCommandIsNotConstructed = errors.New(
	"AddAdHocCostCommand must be created via NewAddAdHocCostCommand constructor",
)

// AddAdHocCostCommand records a cost item incurred while working an order
// (fuel, waiting time, tolls). The cost is built eagerly so a bad name or
// phase is rejected before any transaction starts.
type AddAdHocCostCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	cost    order.AdHocCost

	guard guard.ConstructorGuard
}

// NewAddAdHocCostCommand creates a command for recording an ad-hoc cost.
func NewAddAdHocCostCommand(
	orderID, actorID kernel.UUID,
	name string,
	amount kernel.Money,
	phase order.WorkPhase,
) (AddAdHocCostCommand, error) {
	command := AddAdHocCostCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return AddAdHocCostCommand{}, err
	}

	cost, err := order.NewAdHocCost(name, amount, phase)
	if err != nil {
		return AddAdHocCostCommand{}, err
	}

	command.orderID = orderID
	command.actorID = actorID
	command.cost = cost
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddAdHocCostCommand) Validate() error {
	return c.guard.Validate(ErrAddAdHocCostCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c AddAdHocCostCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the recording actor's ID from the command.
func (c AddAdHocCostCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Cost returns the cost item from the command.
func (c AddAdHocCostCommand) Cost() order.AdHocCost {
	return c.cost
}
