package commands

import (
	"context"
	"errors"

	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/ports"
)

var ErrNotAClient = errors.New("ordering actor is not a client")

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves cost defaults from the client's profile and the external cost
// service, then persists the order in its initial waiting status.
//
// The delivery-cost lookup runs before the transaction opens: it is a remote
// call and must not extend the ledger critical section. A lookup failure
// degrades the order to zero delivering cost and flags it for follow-up.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	costLookup ports.DeliveryCostLookup
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	costLookup ports.DeliveryCostLookup,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		costLookup: costLookup,
		notifier:   notifier,
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	costs := cmd.Costs()
	costUnresolved := false
	var distanceKm float64
	if costs.Delivering == 0 {
		result, err := h.costLookup.Lookup(ctx, cmd.Source(), cmd.Destination())
		if err != nil {
			costUnresolved = true
		} else {
			costs.Delivering = result.Cost
			distanceKm = result.DistanceKm
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	client, err := uow.ActorRepository().Get(ctx, cmd.ClientID())
	if err != nil {
		return err
	}
	if client.Kind() != actor.KindClient {
		return ErrNotAClient
	}

	if costs.Evaluation == 0 && cmd.Kind() == order.KindEvaluationDelivery {
		costs.Evaluation = client.BasicEvaluationCost()
	}
	if costs.Inspection == 0 && cmd.Kind() == order.KindInspectionDelivery {
		costs.Inspection = client.BasicInspectionCost()
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.Kind(), cmd.ClientID(),
		cmd.Source(), cmd.Destination(), cmd.Stopovers(),
		costs, cmd.IsOnsitePayment(), cmd.SkipReceiptConfirmation(), cmd.HookURL(),
	)
	if err != nil {
		return err
	}
	if costUnresolved {
		newOrder.MarkCostUnresolved()
	}
	newOrder.SetDistance(distanceKm)

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:   ports.NotificationOrderCreated,
		OrderID: newOrder.ID(),
		HookURL: newOrder.HookURL(),
	})
	return nil
}
