package commands

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/ports"
)

// DepartDeliveryCommandHandler starts the delivery drive.
type DepartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewDepartDeliveryCommandHandler creates a handler for delivery departures.
func NewDepartDeliveryCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) DepartDeliveryCommandHandler {
	return DepartDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the delivery departure command.
func (h DepartDeliveryCommandHandler) Handle(ctx context.Context, cmd DepartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

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

	if err = workOrder.Depart(cmd.ActorID(), cmd.MileageBefore()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:      ports.NotificationDeliveryStarted,
		OrderID:    workOrder.ID(),
		Recipients: []kernel.UUID{workOrder.Client()},
		HookURL:    workOrder.HookURL(),
	})
	return nil
}
