package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
)

// evaluatedOrder walks an order to WaitingDeliveryStart with the worker still
// holding the delivery leg.
func evaluatedOrder(t *testing.T, o *order.Order, workerID kernel.UUID) {
	t.Helper()
	require.NoError(t, o.StartWork(workerID))
	require.NoError(t, o.RecordEvaluationArtifact(workerID))
	require.NoError(t, o.FinishEvaluation(workerID, time.Now()))
	require.NoError(t, o.DecidePurchase(o.Client(), true, time.Now()))
	require.Equal(t, order.WaitingDeliveryStart, o.Status())
}

func TestHandoverDeliveryCommandHandler_Handle_SettlesEvaluationLeg(t *testing.T) {
	ctx := t.Context()
	client := testClient(t, nil)
	worker := testWorker(t)
	workOrder := newWaitingOrder(t, client.ID())
	account := accountWith(t, worker.ID(), 50000)
	claimOrder(t, workOrder, worker, account)
	evaluatedOrder(t, workOrder, worker.ID())

	cmd, err := commands.NewHandoverDeliveryCommand(workOrder.ID(), worker.ID())
	require.NoError(t, err)

	var recorded *settlement.Settlement

	actorRepo := new(MockActorRepository)
	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	settlementRepo := new(MockSettlementRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, workOrder.ID()).Return(workOrder, nil).Once(),
		uow.On("ActorRepository").Return(actorRepo).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		actorRepo.On("Get", ctx, worker.ID()).Return(worker, nil).Once(),
		ledgerRepo.On("GetAccountForUpdate", ctx, worker.ID()).Return(account, nil).Once(),
		actorRepo.On("Get", ctx, client.ID()).Return(client, nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		settlementRepo.On("Add", ctx, mock.AnythingOfType("*settlement.Settlement")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*settlement.Settlement) }).
			Return(nil).
			Once(),
		actorRepo.On("Update", ctx, mock.AnythingOfType("*actor.Actor")).Return(nil).Once(),
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Account")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.AnythingOfType("ports.Notification")).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewHandoverDeliveryCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.WaitingDeliverer, workOrder.Status())
	assert.True(t, workOrder.IsDeliveryTransferred())
	assert.Nil(t, workOrder.Deliverer())

	// evaluation leg: 50000 + 5000 VAT - 18700 escrow = 36300
	require.NotNil(t, recorded)
	assert.Equal(t, settlement.LegEvaluation, recorded.Leg())
	assert.Equal(t, kernel.Money(36300), recorded.Revenue())
	assert.Equal(t, 1, worker.TotalEvaluationCount())
	assert.Equal(t, 0, worker.TotalDeliveryCount())
	uow.AssertExpectations(t)
}

func TestHandoverDeliveryCommandHandler_Handle_WrongCaller(t *testing.T) {
	ctx := t.Context()
	client := testClient(t, nil)
	worker := testWorker(t)
	workOrder := newWaitingOrder(t, client.ID())
	account := accountWith(t, worker.ID(), 50000)
	claimOrder(t, workOrder, worker, account)
	evaluatedOrder(t, workOrder, worker.ID())

	cmd, err := commands.NewHandoverDeliveryCommand(workOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, workOrder.ID()).Return(workOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewHandoverDeliveryCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrActorNotAllowed)
	assert.Equal(t, order.WaitingDeliveryStart, workOrder.Status())
	notifier.AssertNotCalled(t, "Notify")
}
