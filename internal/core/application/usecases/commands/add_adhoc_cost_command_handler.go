package commands

import (
	"context"
)

// AddAdHocCostCommandHandler records an in-progress cost item on an order.
type AddAdHocCostCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddAdHocCostCommandHandler creates a handler for ad-hoc cost recording.
func NewAddAdHocCostCommandHandler(uowFactory OrderUoWFactory) AddAdHocCostCommandHandler {
	return AddAdHocCostCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ad-hoc cost command.
func (h AddAdHocCostCommandHandler) Handle(ctx context.Context, cmd AddAdHocCostCommand) error {
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

	if err = workOrder.AddAdHocCost(cmd.ActorID(), cmd.Cost()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, workOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
