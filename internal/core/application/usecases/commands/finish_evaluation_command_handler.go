package commands

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/ports"
)

// FinishEvaluationCommandHandler closes the evaluation phase. For inspection
// orders this completes the inspection report and hands the order to the
// client's purchase decision; for combined orders the same worker carries on
// as the deliverer.
type FinishEvaluationCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewFinishEvaluationCommandHandler creates a handler for evaluation completion.
func NewFinishEvaluationCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) FinishEvaluationCommandHandler {
	return FinishEvaluationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the evaluation completion command.
func (h FinishEvaluationCommandHandler) Handle(ctx context.Context, cmd FinishEvaluationCommand) error {
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

	if err = workOrder.FinishEvaluation(cmd.ActorID(), time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Event:      ports.NotificationEvaluationDone,
		OrderID:    workOrder.ID(),
		Recipients: []kernel.UUID{workOrder.Client()},
		HookURL:    workOrder.HookURL(),
	})
	return nil
}
