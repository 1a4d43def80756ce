package commands

import (
	"context"
)

// RecordEvaluationArtifactCommandHandler counts evaluation evidence against
// an order being evaluated.
type RecordEvaluationArtifactCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordEvaluationArtifactCommandHandler creates a handler for artifact recording.
func NewRecordEvaluationArtifactCommandHandler(uowFactory OrderUoWFactory) RecordEvaluationArtifactCommandHandler {
	return RecordEvaluationArtifactCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the artifact recording command.
func (h RecordEvaluationArtifactCommandHandler) Handle(ctx context.Context, cmd RecordEvaluationArtifactCommand) error {
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

	if err = workOrder.RecordEvaluationArtifact(cmd.ActorID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
