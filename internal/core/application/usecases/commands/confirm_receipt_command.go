package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand records the client's confirmation that the delivered
// vehicle arrived in acceptable condition, completing the order.
type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmReceiptCommand creates a command for confirming receipt.
func NewConfirmReceiptCommand(orderID, clientID kernel.UUID) (ConfirmReceiptCommand, error) {
	command := ConfirmReceiptCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		clientID.Validate(),
	); err != nil {
		return ConfirmReceiptCommand{}, err
	}

	command.orderID = orderID
	command.clientID = clientID
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c ConfirmReceiptCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the confirming client's ID from the command.
func (c ConfirmReceiptCommand) ClientID() kernel.UUID {
	return c.clientID
}
