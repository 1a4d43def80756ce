package commands

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a client's request for a new evaluation,
// inspection, or delivery order. Costs left at zero are resolved by the
// handler: the service cost from the client's profile defaults, the
// delivering cost from the external cost service.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(clientID, order.KindEvaluationDelivery,
//	    source, destination, stopovers, costs, false, false, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, costLookup, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Created order with ID: %s", cmd.OrderID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID                 kernel.UUID
	clientID                kernel.UUID
	kind                    order.Kind
	source                  kernel.Address
	destination             kernel.Address
	stopovers               []kernel.Address
	costs                   order.Costs
	isOnsitePayment         bool
	skipReceiptConfirmation bool
	hookURL                 string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command for a new order.
// Automatically generates a unique ID for the order.
func NewCreateOrderCommand(
	clientID kernel.UUID,
	kind order.Kind,
	source kernel.Address,
	destination kernel.Address,
	stopovers []kernel.Address,
	costs order.Costs,
	isOnsitePayment bool,
	skipReceiptConfirmation bool,
	hookURL string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setClientID(clientID),
		command.setKind(kind),
		command.setRoute(source, destination, stopovers),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	command.orderID = kernel.NewUUID()
	command.costs = costs
	command.isOnsitePayment = isOnsitePayment
	command.skipReceiptConfirmation = skipReceiptConfirmation
	command.hookURL = hookURL
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the generated order ID.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the ordering client's ID from the command.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Kind returns the order kind from the command.
func (c CreateOrderCommand) Kind() order.Kind {
	return c.kind
}

// Source returns the pickup address from the command.
func (c CreateOrderCommand) Source() kernel.Address {
	return c.source
}

// Destination returns the delivery address from the command.
func (c CreateOrderCommand) Destination() kernel.Address {
	return c.destination
}

// Stopovers returns the intermediate stops from the command.
func (c CreateOrderCommand) Stopovers() []kernel.Address {
	return c.stopovers
}

// Costs returns the requested cost breakdown from the command.
func (c CreateOrderCommand) Costs() order.Costs {
	return c.costs
}

// IsOnsitePayment returns the on-site payment flag from the command.
func (c CreateOrderCommand) IsOnsitePayment() bool {
	return c.isOnsitePayment
}

// SkipReceiptConfirmation returns the external-marketplace completion flag.
func (c CreateOrderCommand) SkipReceiptConfirmation() bool {
	return c.skipReceiptConfirmation
}

// HookURL returns the webhook endpoint from the command.
func (c CreateOrderCommand) HookURL() string {
	return c.hookURL
}

func (c *CreateOrderCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.clientID = id
	return nil
}

func (c *CreateOrderCommand) setKind(kind order.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *CreateOrderCommand) setRoute(source, destination kernel.Address, stopovers []kernel.Address) error {
	if err := source.Validate(); err != nil {
		return err
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	for _, s := range stopovers {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	c.source = source
	c.destination = destination
	c.stopovers = stopovers
	return nil
}
