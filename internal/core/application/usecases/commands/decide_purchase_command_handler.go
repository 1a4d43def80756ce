package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

// DecidePurchaseCommandHandler applies the client's purchase decision. A
// declined purchase completes the order, so the inspector's leg is settled in
// the same transaction as the status change.
type DecidePurchaseCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
	notifier   ports.Notifier
}

// NewDecidePurchaseCommandHandler creates a handler for purchase decisions.
func NewDecidePurchaseCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) DecidePurchaseCommandHandler {
	return DecidePurchaseCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewSettlementEngine(services.NewFeeCalculator()),
		notifier:   notifier,
	}
}

// Handle processes the purchase decision command.
func (h DecidePurchaseCommandHandler) Handle(ctx context.Context, cmd DecidePurchaseCommand) error {
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

	if err = workOrder.DecidePurchase(cmd.ClientID(), cmd.Purchasing(), now); err != nil {
		return err
	}

	if !cmd.Purchasing() {
		if err = settleLeg(ctx, uow, h.engine, workOrder, settlement.LegEvaluation, *workOrder.Worker(), now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:      ports.NotificationPurchaseDecided,
		OrderID:    workOrder.ID(),
		Recipients: []kernel.UUID{*workOrder.Worker()},
		HookURL:    workOrder.HookURL(),
		Payload:    map[string]any{"purchasing": cmd.Purchasing()},
	})
	return nil
}
