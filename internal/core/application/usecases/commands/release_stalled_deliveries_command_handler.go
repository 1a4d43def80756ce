package commands

import (
	"context"
	"errors"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

// ReleaseStalledDeliveriesCommandHandler hands over every stalled
// self-delivery. Each order is processed in its own transaction so one
// failing order does not block the rest of the sweep.
type ReleaseStalledDeliveriesCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
	notifier   ports.Notifier
}

// NewReleaseStalledDeliveriesCommandHandler creates a handler for the sweep.
func NewReleaseStalledDeliveriesCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
) ReleaseStalledDeliveriesCommandHandler {
	return ReleaseStalledDeliveriesCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewSettlementEngine(services.NewFeeCalculator()),
		notifier:   notifier,
	}
}

// Handle finds stalled self-deliveries and releases each one.
func (h ReleaseStalledDeliveriesCommandHandler) Handle(ctx context.Context, cmd ReleaseStalledDeliveriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	stalledIDs, err := h.findStalled(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	var errs []error
	for _, orderID := range stalledIDs {
		if err := h.releaseOne(ctx, orderID, now); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h ReleaseStalledDeliveriesCommandHandler) findStalled(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stalled, err := uow.OrderRepository().GetAllStalledSelfDeliveries(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(stalled))
	for _, o := range stalled {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

func (h ReleaseStalledDeliveriesCommandHandler) releaseOne(ctx context.Context, orderID kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	workOrder, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	worker := workOrder.Worker()
	if worker == nil {
		// Another transaction already changed the order since the sweep query.
		return nil
	}

	if err = workOrder.HandoverDelivery(*worker); err != nil {
		// The deliverer departed between the sweep query and the row lock.
		if errors.Is(err, order.ErrInvalidOrderStatus) {
			return nil
		}
		return err
	}

	if err = settleLeg(ctx, uow, h.engine, workOrder, settlement.LegEvaluation, *worker, now); err != nil {
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
		Recipients: []kernel.UUID{workOrder.Client(), *worker},
		HookURL:    workOrder.HookURL(),
		Payload:    map[string]any{"automatic": true},
	})
	return nil
}
