package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

// HandoverDeliveryCommandHandler splits a combined order: the worker's
// evaluation leg is settled and the delivery leg goes back on the board for a
// deliverer. Settlement and the status change share one transaction, so a
// handover either fully pays the worker or leaves the order untouched.
type HandoverDeliveryCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
	notifier   ports.Notifier
}

// NewHandoverDeliveryCommandHandler creates a handler for delivery handovers.
func NewHandoverDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) HandoverDeliveryCommandHandler {
	return HandoverDeliveryCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewSettlementEngine(services.NewFeeCalculator()),
		notifier:   notifier,
	}
}

// Handle processes the delivery handover command.
func (h HandoverDeliveryCommandHandler) Handle(ctx context.Context, cmd HandoverDeliveryCommand) error {
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

	if err = workOrder.HandoverDelivery(cmd.ActorID()); err != nil {
		return err
	}

	if err = settleLeg(ctx, uow, h.engine, workOrder, settlement.LegEvaluation, cmd.ActorID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:      ports.NotificationDeliveryHandover,
		OrderID:    workOrder.ID(),
		Recipients: []kernel.UUID{workOrder.Client()},
		HookURL:    workOrder.HookURL(),
	})
	return nil
}
