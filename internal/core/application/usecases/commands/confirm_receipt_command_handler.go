package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

// ConfirmReceiptCommandHandler completes an order on the client's receipt
// confirmation and settles the deliverer's leg in the same transaction.
type ConfirmReceiptCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
	notifier   ports.Notifier
}

// NewConfirmReceiptCommandHandler creates a handler for receipt confirmations.
func NewConfirmReceiptCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewSettlementEngine(services.NewFeeCalculator()),
		notifier:   notifier,
	}
}

// Handle processes the receipt confirmation command.
func (h ConfirmReceiptCommandHandler) Handle(ctx context.Context, cmd ConfirmReceiptCommand) error {
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

	if err = workOrder.ConfirmReceipt(cmd.ClientID()); err != nil {
		return err
	}

	if err = settleLeg(ctx, uow, h.engine, workOrder, settlement.LegDelivery, *workOrder.Deliverer(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:      ports.NotificationOrderCompleted,
		OrderID:    workOrder.ID(),
		Recipients: []kernel.UUID{*workOrder.Deliverer()},
		HookURL:    workOrder.HookURL(),
	})
	return nil
}
