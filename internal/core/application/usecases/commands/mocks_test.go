package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/core/domain/services"
	"carveyor/internal/core/ports"
)

type MockActorRepository struct{ mock.Mock }

func (m *MockActorRepository) Add(ctx context.Context, a *actor.Actor) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActorRepository) Update(ctx context.Context, a *actor.Actor) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActorRepository) Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actor.Actor), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllWaitingAssignment(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllStalledSelfDeliveries(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) GetAccount(ctx context.Context, actorID kernel.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockLedgerRepository) GetAccountForUpdate(ctx context.Context, actorID kernel.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

type MockSettlementRepository struct{ mock.Mock }

func (m *MockSettlementRepository) Add(ctx context.Context, record *settlement.Settlement) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSettlementRepository) AddReferral(ctx context.Context, record *settlement.ReferralSettlement) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ActorRepository() ports.ActorRepository {
	args := m.Called()
	return args.Get(0).(ports.ActorRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

func (m *MockUoW) SettlementRepository() ports.SettlementRepository {
	args := m.Called()
	return args.Get(0).(ports.SettlementRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) ActorRepository() ports.ActorRepository {
	args := m.Called()
	return args.Get(0).(ports.ActorRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLedgerUoW struct{ mock.Mock }

func (m *MockLedgerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, notification ports.Notification) {
	m.Called(ctx, notification)
}

type MockDeliveryCostLookup struct{ mock.Mock }

func (m *MockDeliveryCostLookup) Lookup(
	ctx context.Context,
	source, destination kernel.Address,
) (ports.DeliveryCostResult, error) {
	args := m.Called(ctx, source, destination)
	return args.Get(0).(ports.DeliveryCostResult), args.Error(1)
}

// Shared fixtures. The cost schedule matches the worked examples in the
// domain service tests: 50000 evaluation + 30000 delivering + one stopover.

func testAddress(t *testing.T, road string) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress(road, "")
	require.NoError(t, err)
	return address
}

func testCosts() order.Costs {
	return order.Costs{
		Evaluation: 50000,
		Delivering: 30000,
	}
}

func newWaitingOrder(t *testing.T, clientID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), order.KindEvaluationDelivery, clientID,
		testAddress(t, "1 Pickup Rd"), testAddress(t, "2 Dropoff Ave"),
		[]kernel.Address{testAddress(t, "3 Stopover St")},
		testCosts(), false, false, "",
	)
	require.NoError(t, err)
	return o
}

func testClient(t *testing.T, referrerID *kernel.UUID) *actor.Actor {
	t.Helper()
	client, err := actor.NewClient(kernel.NewUUID(), "Test Client", 50000, 40000, referrerID)
	require.NoError(t, err)
	return client
}

func testWorker(t *testing.T) *actor.Actor {
	t.Helper()
	worker, err := actor.NewWorker(kernel.NewUUID(), "Test Worker", time.Now().Add(24*time.Hour), 0)
	require.NoError(t, err)
	return worker
}

func accountWith(t *testing.T, actorID kernel.UUID, balance int64) *ledger.Account {
	t.Helper()
	account, err := ledger.NewAccount(actorID)
	require.NoError(t, err)
	if balance > 0 {
		_, err = account.Deposit(kernel.Money(balance), time.Now())
		require.NoError(t, err)
	}
	return account
}

// claimOrder assigns the worker and escrows the assignment fee, mirroring
// what the assignment handler does inside its transaction.
func claimOrder(t *testing.T, o *order.Order, worker *actor.Actor, account *ledger.Account) {
	t.Helper()
	coordinator := services.NewEscrowCoordinator(services.NewFeeCalculator())
	_, err := coordinator.Reserve(o, worker, account, time.Now())
	require.NoError(t, err)
}

// deliveredOrder walks an order to DeliveryDone with the worker keeping the
// delivery leg, ready for the client's receipt confirmation.
func deliveredOrder(t *testing.T, o *order.Order, worker *actor.Actor, account *ledger.Account) {
	t.Helper()
	claimOrder(t, o, worker, account)
	require.NoError(t, o.StartWork(worker.ID()))
	require.NoError(t, o.RecordEvaluationArtifact(worker.ID()))
	require.NoError(t, o.FinishEvaluation(worker.ID(), time.Now()))
	require.NoError(t, o.DecidePurchase(o.Client(), true, time.Now()))
	require.NoError(t, o.Depart(worker.ID(), 100))
	require.NoError(t, o.Arrive(worker.ID(), 200))
	require.Equal(t, order.DeliveryDone, o.Status())
}
