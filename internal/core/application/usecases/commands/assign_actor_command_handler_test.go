package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"
	"carveyor/internal/core/domain/model/order"
)

func TestAssignActorCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	client := testClient(t, nil)
	worker := testWorker(t)
	waitingOrder := newWaitingOrder(t, client.ID())
	account := accountWith(t, worker.ID(), 50000)

	cmd, err := commands.NewAssignActorCommand(waitingOrder.ID(), worker.ID())
	require.NoError(t, err)

	actorRepo := new(MockActorRepository)
	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, waitingOrder.ID()).Return(waitingOrder, nil).Once(),
		uow.On("ActorRepository").Return(actorRepo).Once(),
		actorRepo.On("Get", ctx, worker.ID()).Return(worker, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("GetAccountForUpdate", ctx, worker.ID()).Return(account, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Account")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.AnythingOfType("ports.Notification")).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignActorCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.WaitingWorkStart, waitingOrder.Status())
	require.NotNil(t, waitingOrder.Worker())
	assert.Equal(t, worker.ID(), *waitingOrder.Worker())

	// direct 85000 -> final 93500 -> 20% fee 18700 held in escrow
	assert.Equal(t, kernel.Money(31300), account.Balance())
	require.Len(t, account.OpenEscrows(), 1)
	assert.Equal(t, kernel.Money(18700), account.OpenEscrows()[0].Amount())
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAssignActorCommandHandler_Handle_InsufficientBalance(t *testing.T) {
	ctx := t.Context()
	client := testClient(t, nil)
	worker := testWorker(t)
	waitingOrder := newWaitingOrder(t, client.ID())
	account := accountWith(t, worker.ID(), 1000)

	cmd, err := commands.NewAssignActorCommand(waitingOrder.ID(), worker.ID())
	require.NoError(t, err)

	actorRepo := new(MockActorRepository)
	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, waitingOrder.ID()).Return(waitingOrder, nil).Once(),
		uow.On("ActorRepository").Return(actorRepo).Once(),
		actorRepo.On("Get", ctx, worker.ID()).Return(worker, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("GetAccountForUpdate", ctx, worker.ID()).Return(account, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignActorCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	// Nothing changed: the order still waits and the balance is intact.
	assert.Equal(t, order.WaitingWorker, waitingOrder.Status())
	assert.Equal(t, kernel.Money(1000), account.Balance())
	notifier.AssertNotCalled(t, "Notify")
}

func TestAssignActorCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignActorCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewAssignActorCommandHandler(factory, new(MockNotifier))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignActorCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
