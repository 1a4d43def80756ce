package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrDecidePurchaseCommandIsNotConstructed = errors.New(
	"DecidePurchaseCommand must be created via NewDecidePurchaseCommand constructor",
)

// DecidePurchaseCommand carries the client's purchase decision after an
// inspection: proceed with the purchase and delivery, or walk away.
type DecidePurchaseCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clientID   kernel.UUID
	purchasing bool

	guard guard.ConstructorGuard
}

// NewDecidePurchaseCommand creates a command for the purchase decision.
func NewDecidePurchaseCommand(orderID, clientID kernel.UUID, purchasing bool) (DecidePurchaseCommand, error) {
	command := DecidePurchaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		clientID.Validate(),
	); err != nil {
		return DecidePurchaseCommand{}, err
	}

	command.orderID = orderID
	command.clientID = clientID
	command.purchasing = purchasing
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DecidePurchaseCommand) Validate() error {
	return c.guard.Validate(ErrDecidePurchaseCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c DecidePurchaseCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the deciding client's ID from the command.
func (c DecidePurchaseCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Purchasing reports whether the client goes through with the purchase.
func (c DecidePurchaseCommand) Purchasing() bool {
	return c.purchasing
}
