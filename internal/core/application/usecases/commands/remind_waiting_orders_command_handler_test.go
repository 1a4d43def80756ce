package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/ports"
)

func TestRemindWaitingOrdersCommandHandler_Handle_NotifiesEveryClient(t *testing.T) {
	ctx := t.Context()
	first := newWaitingOrder(t, kernel.NewUUID())
	second := newWaitingOrder(t, kernel.NewUUID())

	var notified []ports.Notification

	orderRepo := new(MockOrderRepository)
	notifier := new(MockNotifier)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllWaitingAssignment", ctx).Return([]*order.Order{first, second}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("Notify", ctx, mock.AnythingOfType("ports.Notification")).
		Run(func(args mock.Arguments) { notified = append(notified, args.Get(1).(ports.Notification)) }).
		Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemindWaitingOrdersCommandHandler(factory, notifier)
	err := handler.Handle(ctx, commands.NewRemindWaitingOrdersCommand())

	require.NoError(t, err)
	require.Len(t, notified, 2)
	assert.Equal(t, ports.NotificationAssignmentReminder, notified[0].Event)
	assert.Equal(t, first.ID(), notified[0].OrderID)
	assert.Equal(t, []kernel.UUID{first.Client()}, notified[0].Recipients)
	assert.Equal(t, map[string]any{"status": "WaitingWorker"}, notified[0].Payload)
	assert.Equal(t, second.ID(), notified[1].OrderID)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRemindWaitingOrdersCommandHandler_Handle_EmptyBoard(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	notifier := new(MockNotifier)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllWaitingAssignment", ctx).Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemindWaitingOrdersCommandHandler(factory, notifier)
	err := handler.Handle(ctx, commands.NewRemindWaitingOrdersCommand())

	require.NoError(t, err)
	notifier.AssertNotCalled(t, "Notify")
}

func TestRemindWaitingOrdersCommandHandler_Handle_InvalidCommand(t *testing.T) {
	handler := commands.NewRemindWaitingOrdersCommandHandler(new(MockOrderUoWFactory), new(MockNotifier))

	err := handler.Handle(t.Context(), commands.RemindWaitingOrdersCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRemindWaitingOrdersCommandIsNotConstructed)
}
