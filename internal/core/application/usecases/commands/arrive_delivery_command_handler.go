package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

// ArriveDeliveryCommandHandler ends the delivery drive. Orders configured to
// skip the client's receipt confirmation complete on arrival, in which case
// the deliverer's leg is settled in the same transaction.
type ArriveDeliveryCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
	notifier   ports.Notifier
}

// NewArriveDeliveryCommandHandler creates a handler for delivery arrivals.
func NewArriveDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ArriveDeliveryCommandHandler {
	return ArriveDeliveryCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewSettlementEngine(services.NewFeeCalculator()),
		notifier:   notifier,
	}
}

// Handle processes the delivery arrival command.
func (h ArriveDeliveryCommandHandler) Handle(ctx context.Context, cmd ArriveDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	workOrder, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = workOrder.Arrive(cmd.ActorID(), cmd.MileageAfter()); err != nil {
		return err
	}

	completed := workOrder.Status() == order.Done
	if completed {
		if err = settleLeg(ctx, uow, h.engine, workOrder, settlement.LegDelivery, cmd.ActorID(), now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.NotificationDeliveryArrived
	if completed {
		event = ports.NotificationOrderCompleted
	}
	h.notifier.Notify(ctx, ports.Notification{
		Event:      event,
		OrderID:    workOrder.ID(),
		Recipients: []kernel.UUID{workOrder.Client()},
		HookURL:    workOrder.HookURL(),
	})
	return nil
}
