package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/ports"
)

func TestReleaseStalledDeliveriesCommandHandler_Handle_ReleasesStalledOrder(t *testing.T) {
	ctx := t.Context()
	client := testClient(t, nil)
	worker := testWorker(t)
	workOrder := newWaitingOrder(t, client.ID())
	account := accountWith(t, worker.ID(), 50000)
	claimOrder(t, workOrder, worker, account)
	evaluatedOrder(t, workOrder, worker.ID())
	require.False(t, workOrder.IsDeliveryTransferred(), "A self-delivery keeps the leg until the sweep")

	var recorded *settlement.Settlement
	var notified ports.Notification

	actorRepo := new(MockActorRepository)
	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	settlementRepo := new(MockSettlementRepository)
	notifier := new(MockNotifier)
	sweepUow := new(MockUoW)
	releaseUow := new(MockUoW)

	mock.InOrder(
		sweepUow.On("Begin", ctx).Return(nil).Once(),
		sweepUow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllStalledSelfDeliveries", ctx).Return([]*order.Order{workOrder}, nil).Once(),
		sweepUow.On("Rollback", ctx).Return(nil).Once(),

		releaseUow.On("Begin", ctx).Return(nil).Once(),
		releaseUow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, workOrder.ID()).Return(workOrder, nil).Once(),
		releaseUow.On("ActorRepository").Return(actorRepo).Once(),
		releaseUow.On("LedgerRepository").Return(ledgerRepo).Once(),
		actorRepo.On("Get", ctx, worker.ID()).Return(worker, nil).Once(),
		ledgerRepo.On("GetAccountForUpdate", ctx, worker.ID()).Return(account, nil).Once(),
		actorRepo.On("Get", ctx, client.ID()).Return(client, nil).Once(),
		releaseUow.On("SettlementRepository").Return(settlementRepo).Once(),
		settlementRepo.On("Add", ctx, mock.AnythingOfType("*settlement.Settlement")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*settlement.Settlement) }).
			Return(nil).
			Once(),
		actorRepo.On("Update", ctx, mock.AnythingOfType("*actor.Actor")).Return(nil).Once(),
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Account")).Return(nil).Once(),
		releaseUow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		releaseUow.On("Commit", ctx).Return(nil).Once(),
		releaseUow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.AnythingOfType("ports.Notification")).
			Run(func(args mock.Arguments) { notified = args.Get(1).(ports.Notification) }).
			Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(sweepUow).Once()
	factory.On("Create").Return(releaseUow).Once()

	handler := commands.NewReleaseStalledDeliveriesCommandHandler(factory, notifier)
	err := handler.Handle(ctx, commands.NewReleaseStalledDeliveriesCommand())

	require.NoError(t, err)
	assert.Equal(t, order.WaitingDeliverer, workOrder.Status())
	assert.True(t, workOrder.IsDeliveryTransferred())
	assert.Nil(t, workOrder.Deliverer())

	require.NotNil(t, recorded)
	assert.Equal(t, settlement.LegEvaluation, recorded.Leg())

	assert.Equal(t, ports.NotificationDeliveryHandover, notified.Event)
	assert.Equal(t, map[string]any{"automatic": true}, notified.Payload)
	sweepUow.AssertExpectations(t)
	releaseUow.AssertExpectations(t)
}

func TestReleaseStalledDeliveriesCommandHandler_Handle_NothingStalled(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllStalledSelfDeliveries", ctx).Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleaseStalledDeliveriesCommandHandler(factory, notifier)
	err := handler.Handle(ctx, commands.NewReleaseStalledDeliveriesCommand())

	require.NoError(t, err)
	notifier.AssertNotCalled(t, "Notify")
}

func TestReleaseStalledDeliveriesCommandHandler_Handle_SkipsDepartedOrder(t *testing.T) {
	ctx := t.Context()
	client := testClient(t, nil)
	worker := testWorker(t)
	workOrder := newWaitingOrder(t, client.ID())
	account := accountWith(t, worker.ID(), 50000)
	claimOrder(t, workOrder, worker, account)
	evaluatedOrder(t, workOrder, worker.ID())
	require.NoError(t, workOrder.Depart(worker.ID(), 100))

	orderRepo := new(MockOrderRepository)
	notifier := new(MockNotifier)
	sweepUow := new(MockUoW)
	releaseUow := new(MockUoW)

	mock.InOrder(
		sweepUow.On("Begin", ctx).Return(nil).Once(),
		sweepUow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllStalledSelfDeliveries", ctx).Return([]*order.Order{workOrder}, nil).Once(),
		sweepUow.On("Rollback", ctx).Return(nil).Once(),

		releaseUow.On("Begin", ctx).Return(nil).Once(),
		releaseUow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, workOrder.ID()).Return(workOrder, nil).Once(),
		releaseUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(sweepUow).Once()
	factory.On("Create").Return(releaseUow).Once()

	handler := commands.NewReleaseStalledDeliveriesCommandHandler(factory, notifier)
	err := handler.Handle(ctx, commands.NewReleaseStalledDeliveriesCommand())

	require.NoError(t, err)
	assert.Equal(t, order.Delivering, workOrder.Status())
	notifier.AssertNotCalled(t, "Notify")
}

func TestReleaseStalledDeliveriesCommandHandler_Handle_InvalidCommand(t *testing.T) {
	handler := commands.NewReleaseStalledDeliveriesCommandHandler(new(MockUoWFactory), new(MockNotifier))

	err := handler.Handle(t.Context(), commands.ReleaseStalledDeliveriesCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrReleaseStalledDeliveriesCommandIsNotConstructed)
}
