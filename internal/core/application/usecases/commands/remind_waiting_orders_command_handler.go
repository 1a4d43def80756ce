package commands

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/ports"
)

// RemindWaitingOrdersCommandHandler sends an assignment reminder for every
// order still on the board. The read runs in a transaction that is rolled
// back; only notifications leave the handler.
type RemindWaitingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewRemindWaitingOrdersCommandHandler creates a handler for reminder runs.
func NewRemindWaitingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) RemindWaitingOrdersCommandHandler {
	return RemindWaitingOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle notifies the client of every order waiting for assignment.
func (h RemindWaitingOrdersCommandHandler) Handle(ctx context.Context, cmd RemindWaitingOrdersCommand) error {
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

	waiting, err := uow.OrderRepository().GetAllWaitingAssignment(ctx)
	if err != nil {
		return err
	}

	for _, o := range waiting {
		h.notifier.Notify(ctx, ports.Notification{
			Event:      ports.NotificationAssignmentReminder,
			OrderID:    o.ID(),
			Recipients: []kernel.UUID{o.Client()},
			HookURL:    o.HookURL(),
			Payload: map[string]any{
				"status": o.Status().String(),
			},
		})
	}
	return nil
}
