package commands

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/ports"
)

// StartWorkCommandHandler moves an assigned order into Evaluating.
// No money moves; only the order row is locked and updated.
type StartWorkCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewStartWorkCommandHandler creates a handler for work start operations.
func NewStartWorkCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) StartWorkCommandHandler {
	return StartWorkCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the work start command.
func (h StartWorkCommandHandler) Handle(ctx context.Context, cmd StartWorkCommand) error {
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

	if err = workOrder.StartWork(cmd.ActorID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:      ports.NotificationWorkStarted,
		OrderID:    workOrder.ID(),
		Recipients: []kernel.UUID{workOrder.Client()},
		HookURL:    workOrder.HookURL(),
	})
	return nil
}
