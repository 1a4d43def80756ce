package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and refunds the live escrows of
// every actor holding one against it. The refund and the status change share
// one transaction; escrows already consumed by a settlement stay closed.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	escrow     services.EscrowCoordinator
	notifier   ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		escrow:     services.NewEscrowCoordinator(services.NewFeeCalculator()),
		notifier:   notifier,
	}
}

// Handle processes the order cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = workOrder.Cancel(); err != nil {
		return err
	}

	recipients := []kernel.UUID{workOrder.Client()}
	for _, holderID := range escrowHolders(workOrder) {
		recipients = append(recipients, holderID)

		account, err := uow.LedgerRepository().GetAccountForUpdate(ctx, holderID)
		if err != nil {
			return err
		}
		if _, err = h.escrow.Release(workOrder, account, now); err != nil {
			return err
		}
		if err = uow.LedgerRepository().Save(ctx, account); err != nil {
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
		Event:      ports.NotificationOrderCancelled,
		OrderID:    workOrder.ID(),
		Recipients: recipients,
		HookURL:    workOrder.HookURL(),
	})
	return nil
}

// escrowHolders lists the distinct actors that may hold a fee escrow against
// the order.
func escrowHolders(o *order.Order) []kernel.UUID {
	var holders []kernel.UUID
	if workerID := o.Worker(); workerID != nil {
		holders = append(holders, *workerID)
	}
	if delivererID := o.Deliverer(); delivererID != nil {
		if workerID := o.Worker(); workerID == nil || !workerID.IsEqual(*delivererID) {
			holders = append(holders, *delivererID)
		}
	}
	return holders
}
