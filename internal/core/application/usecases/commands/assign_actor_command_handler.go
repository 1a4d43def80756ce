package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

// AssignActorCommandHandler orchestrates an order claim: the status
// transition and the fee escrow commit or roll back together. The order row
// and the claimant's ledger rows are locked for the duration, so two workers
// racing for the same order serialize and the loser gets a status error.
type AssignActorCommandHandler struct {
	uowFactory UoWFactory
	escrow     services.EscrowCoordinator
	notifier   ports.Notifier
}

// NewAssignActorCommandHandler creates a handler for order claim operations.
func NewAssignActorCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AssignActorCommandHandler {
	return AssignActorCommandHandler{
		uowFactory: uowFactory,
		escrow:     services.NewEscrowCoordinator(services.NewFeeCalculator()),
		notifier:   notifier,
	}
}

// Handle processes the order claim command.
func (h AssignActorCommandHandler) Handle(ctx context.Context, cmd AssignActorCommand) error {
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

	claimedOrder, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	claimant, err := uow.ActorRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	account, err := uow.LedgerRepository().GetAccountForUpdate(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	if _, err = h.escrow.Reserve(claimedOrder, claimant, account, time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, claimedOrder); err != nil {
		return err
	}
	if err = uow.LedgerRepository().Save(ctx, account); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:      ports.NotificationOrderAssigned,
		OrderID:    claimedOrder.ID(),
		Recipients: []kernel.UUID{claimedOrder.Client()},
		HookURL:    claimedOrder.HookURL(),
	})
	return nil
}
