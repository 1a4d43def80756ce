package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/domain/model/kernel"
)

func mustAddress(t *testing.T, road string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(road, "")
	require.NoError(t, err)
	return addr
}

func testCosts() Costs {
	return Costs{
		Evaluation: kernel.Money(50000),
		Delivering: kernel.Money(30000),
	}
}

func newTestOrder(t *testing.T, kind Kind) (*Order, kernel.UUID) {
	t.Helper()
	clientID := kernel.NewUUID()
	o, err := NewOrder(
		kernel.NewUUID(),
		kind,
		clientID,
		mustAddress(t, "Teheran-ro 123"),
		mustAddress(t, "Haeundae-ro 456"),
		nil,
		testCosts(),
		false,
		false,
		"",
	)
	require.NoError(t, err)
	return o, clientID
}

// assignWorker walks a fresh order to WaitingWorkStart and returns the worker id.
func assignWorker(t *testing.T, o *Order) kernel.UUID {
	t.Helper()
	workerID := kernel.NewUUID()
	asDeliverer, err := o.Assign(workerID)
	require.NoError(t, err)
	require.False(t, asDeliverer)
	return workerID
}

// evaluateOrder walks a fresh evaluation order to EvaluationDone.
func evaluateOrder(t *testing.T, o *Order) kernel.UUID {
	t.Helper()
	workerID := assignWorker(t, o)
	require.NoError(t, o.StartWork(workerID))
	require.NoError(t, o.RecordEvaluationArtifact(workerID))
	require.NoError(t, o.FinishEvaluation(workerID, time.Now()))
	return workerID
}

func Test_NewOrder(t *testing.T) {
	t.Run("evaluation order starts waiting for a worker", func(t *testing.T) {
		o, clientID := newTestOrder(t, KindEvaluationDelivery)

		assert.Equal(t, WaitingWorker, o.Status())
		assert.Equal(t, KindEvaluationDelivery, o.Kind())
		assert.True(t, o.Client().IsEqual(clientID))
		assert.Nil(t, o.Worker())
		assert.Nil(t, o.Deliverer())
		assert.NoError(t, o.Validate())
	})

	t.Run("delivery-only order starts waiting for a deliverer", func(t *testing.T) {
		o, _ := newTestOrder(t, KindDeliveryOnly)
		assert.Equal(t, WaitingDeliverer, o.Status())
	})

	t.Run("requires a valid kind", func(t *testing.T) {
		_, err := NewOrder(
			kernel.NewUUID(), KindUnknown, kernel.NewUUID(),
			mustAddress(t, "a"), mustAddress(t, "b"), nil, Costs{}, false, false, "",
		)
		assert.Error(t, err)
	})

	t.Run("requires constructed addresses", func(t *testing.T) {
		_, err := NewOrder(
			kernel.NewUUID(), KindDeliveryOnly, kernel.NewUUID(),
			kernel.Address{}, mustAddress(t, "b"), nil, Costs{}, false, false, "",
		)
		assert.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
	})

	t.Run("requires a client id", func(t *testing.T) {
		_, err := NewOrder(
			kernel.NewUUID(), KindDeliveryOnly, kernel.UUID{},
			mustAddress(t, "a"), mustAddress(t, "b"), nil, Costs{}, false, false, "",
		)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func Test_Order_Assign(t *testing.T) {
	t.Run("assigns a worker to a waiting order", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := kernel.NewUUID()

		asDeliverer, err := o.Assign(workerID)

		assert.NoError(t, err)
		assert.False(t, asDeliverer)
		assert.Equal(t, WaitingWorkStart, o.Status())
		require.NotNil(t, o.Worker())
		assert.True(t, o.Worker().IsEqual(workerID))
	})

	t.Run("assigns a deliverer to a delivery-only order", func(t *testing.T) {
		o, _ := newTestOrder(t, KindDeliveryOnly)
		delivererID := kernel.NewUUID()

		asDeliverer, err := o.Assign(delivererID)

		assert.NoError(t, err)
		assert.True(t, asDeliverer)
		assert.Equal(t, WaitingDeliveryStart, o.Status())
		require.NotNil(t, o.Deliverer())
		assert.True(t, o.Deliverer().IsEqual(delivererID))
		assert.Nil(t, o.Worker())
	})

	t.Run("rejects double assignment", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		assignWorker(t, o)

		_, err := o.Assign(kernel.NewUUID())
		assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	})

	t.Run("rejects a zero actor id", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		_, err := o.Assign(kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func Test_Order_StartWork(t *testing.T) {
	t.Run("assigned worker starts", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)

		assert.NoError(t, o.StartWork(workerID))
		assert.Equal(t, Evaluating, o.Status())
	})

	t.Run("someone else cannot start", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		assignWorker(t, o)

		assert.ErrorIs(t, o.StartWork(kernel.NewUUID()), ErrActorNotAllowed)
		assert.Equal(t, WaitingWorkStart, o.Status())
	})
}

func Test_Order_FinishEvaluation(t *testing.T) {
	t.Run("evaluation waits for the purchase decision", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)
		require.NoError(t, o.StartWork(workerID))
		require.NoError(t, o.RecordEvaluationArtifact(workerID))

		finishedAt := time.Now()
		require.NoError(t, o.FinishEvaluation(workerID, finishedAt))

		assert.Equal(t, EvaluationDone, o.Status())
		assert.Equal(t, finishedAt, o.EvaluationFinishedAt())
		assert.Nil(t, o.Deliverer())
	})

	t.Run("inspection proceeds directly to delivery with the worker", func(t *testing.T) {
		o, _ := newTestOrder(t, KindInspectionDelivery)
		workerID := assignWorker(t, o)
		require.NoError(t, o.StartWork(workerID))
		require.NoError(t, o.RecordEvaluationArtifact(workerID))

		require.NoError(t, o.FinishEvaluation(workerID, time.Now()))

		assert.Equal(t, WaitingDeliveryStart, o.Status())
		require.NotNil(t, o.Deliverer())
		assert.True(t, o.Deliverer().IsEqual(workerID))
		assert.True(t, o.IsSelfDelivery())
	})

	t.Run("requires at least one artifact", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)
		require.NoError(t, o.StartWork(workerID))

		assert.ErrorIs(t, o.FinishEvaluation(workerID, time.Now()), ErrEvaluationNotCompleted)
		assert.Equal(t, Evaluating, o.Status())
	})

	t.Run("only the worker may finish", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)
		require.NoError(t, o.StartWork(workerID))
		require.NoError(t, o.RecordEvaluationArtifact(workerID))

		assert.ErrorIs(t, o.FinishEvaluation(kernel.NewUUID(), time.Now()), ErrActorNotAllowed)
	})
}

func Test_Order_RecordEvaluationArtifact(t *testing.T) {
	t.Run("counts artifacts while evaluating", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)
		require.NoError(t, o.StartWork(workerID))

		require.NoError(t, o.RecordEvaluationArtifact(workerID))
		require.NoError(t, o.RecordEvaluationArtifact(workerID))

		assert.Equal(t, 2, o.EvaluationArtifactCount())
	})

	t.Run("rejects recording before work starts", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)

		assert.ErrorIs(t, o.RecordEvaluationArtifact(workerID), ErrInvalidOrderStatus)
	})
}

func Test_Order_DecidePurchase(t *testing.T) {
	t.Run("purchase keeps the worker as deliverer", func(t *testing.T) {
		o, clientID := newTestOrder(t, KindEvaluationDelivery)
		workerID := evaluateOrder(t, o)

		decidedAt := time.Now()
		require.NoError(t, o.DecidePurchase(clientID, true, decidedAt))

		assert.Equal(t, WaitingDeliveryStart, o.Status())
		require.NotNil(t, o.Deliverer())
		assert.True(t, o.Deliverer().IsEqual(workerID))
		assert.Equal(t, decidedAt, o.DeliveryDecidedAt())
		assert.True(t, o.IsSelfDelivery())
	})

	t.Run("decline completes the order", func(t *testing.T) {
		o, clientID := newTestOrder(t, KindEvaluationDelivery)
		evaluateOrder(t, o)

		require.NoError(t, o.DecidePurchase(clientID, false, time.Now()))

		assert.Equal(t, Done, o.Status())
		assert.Nil(t, o.Deliverer())
	})

	t.Run("only the client decides", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := evaluateOrder(t, o)

		assert.ErrorIs(t, o.DecidePurchase(workerID, true, time.Now()), ErrActorNotAllowed)
	})
}

func Test_Order_HandoverDelivery(t *testing.T) {
	t.Run("releases the leg back to waiting", func(t *testing.T) {
		o, clientID := newTestOrder(t, KindEvaluationDelivery)
		workerID := evaluateOrder(t, o)
		require.NoError(t, o.DecidePurchase(clientID, true, time.Now()))

		require.NoError(t, o.HandoverDelivery(workerID))

		assert.Equal(t, WaitingDeliverer, o.Status())
		assert.True(t, o.IsDeliveryTransferred())
		assert.Nil(t, o.Deliverer())
		assert.False(t, o.IsSelfDelivery())
	})

	t.Run("a new deliverer can claim after handover", func(t *testing.T) {
		o, clientID := newTestOrder(t, KindEvaluationDelivery)
		workerID := evaluateOrder(t, o)
		require.NoError(t, o.DecidePurchase(clientID, true, time.Now()))
		require.NoError(t, o.HandoverDelivery(workerID))

		delivererID := kernel.NewUUID()
		asDeliverer, err := o.Assign(delivererID)

		require.NoError(t, err)
		assert.True(t, asDeliverer)
		assert.Equal(t, WaitingDeliveryStart, o.Status())
		assert.True(t, o.Deliverer().IsEqual(delivererID))
	})

	t.Run("only the worker may hand over", func(t *testing.T) {
		o, clientID := newTestOrder(t, KindEvaluationDelivery)
		evaluateOrder(t, o)
		require.NoError(t, o.DecidePurchase(clientID, true, time.Now()))

		assert.ErrorIs(t, o.HandoverDelivery(kernel.NewUUID()), ErrActorNotAllowed)
	})
}

func Test_Order_DeliveryRun(t *testing.T) {
	t.Run("depart and arrive record mileage", func(t *testing.T) {
		o, _ := newTestOrder(t, KindDeliveryOnly)
		delivererID := kernel.NewUUID()
		_, err := o.Assign(delivererID)
		require.NoError(t, err)

		require.NoError(t, o.Depart(delivererID, 42100))
		assert.Equal(t, Delivering, o.Status())
		assert.Equal(t, int64(42100), o.MileageBeforeDelivery())

		require.NoError(t, o.Arrive(delivererID, 42480))
		assert.Equal(t, DeliveryDone, o.Status())
		assert.Equal(t, int64(42480), o.MileageAfterDelivery())
	})

	t.Run("arrival completes directly without a confirmation step", func(t *testing.T) {
		o, err := NewOrder(
			kernel.NewUUID(), KindDeliveryOnly, kernel.NewUUID(),
			mustAddress(t, "a"), mustAddress(t, "b"), nil, Costs{}, false, true,
			"https://partner.example/hooks/orders",
		)
		require.NoError(t, err)
		delivererID := kernel.NewUUID()
		_, err = o.Assign(delivererID)
		require.NoError(t, err)
		require.NoError(t, o.Depart(delivererID, 100))

		require.NoError(t, o.Arrive(delivererID, 200))

		assert.Equal(t, Done, o.Status())
	})

	t.Run("only the deliverer may drive", func(t *testing.T) {
		o, _ := newTestOrder(t, KindDeliveryOnly)
		delivererID := kernel.NewUUID()
		_, err := o.Assign(delivererID)
		require.NoError(t, err)

		assert.ErrorIs(t, o.Depart(kernel.NewUUID(), 100), ErrActorNotAllowed)
	})
}

func Test_Order_ConfirmReceipt(t *testing.T) {
	t.Run("client confirmation completes the order", func(t *testing.T) {
		o, clientID := newTestOrder(t, KindDeliveryOnly)
		delivererID := kernel.NewUUID()
		_, err := o.Assign(delivererID)
		require.NoError(t, err)
		require.NoError(t, o.Depart(delivererID, 100))
		require.NoError(t, o.Arrive(delivererID, 200))

		require.NoError(t, o.ConfirmReceipt(clientID))
		assert.Equal(t, Done, o.Status())
	})

	t.Run("only the client confirms", func(t *testing.T) {
		o, _ := newTestOrder(t, KindDeliveryOnly)
		delivererID := kernel.NewUUID()
		_, err := o.Assign(delivererID)
		require.NoError(t, err)
		require.NoError(t, o.Depart(delivererID, 100))
		require.NoError(t, o.Arrive(delivererID, 200))

		assert.ErrorIs(t, o.ConfirmReceipt(delivererID), ErrActorNotAllowed)
	})
}

func Test_Order_Cancel(t *testing.T) {
	t.Run("cancels waiting orders", func(t *testing.T) {
		for _, kind := range []Kind{KindEvaluationDelivery, KindDeliveryOnly} {
			o, _ := newTestOrder(t, kind)
			require.NoError(t, o.Cancel())
			assert.Equal(t, Cancelled, o.Status())
		}
	})

	t.Run("cancels an assigned but not started order", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		assignWorker(t, o)

		require.NoError(t, o.Cancel())
		assert.Equal(t, Cancelled, o.Status())
	})

	t.Run("rejects cancelling work in progress", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)
		require.NoError(t, o.StartWork(workerID))

		assert.ErrorIs(t, o.Cancel(), ErrInvalidOrderStatus)
	})

	t.Run("rejects cancelling twice", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		require.NoError(t, o.Cancel())

		assert.ErrorIs(t, o.Cancel(), ErrAlreadyCancelled)
	})
}

func Test_Order_AddAdHocCost(t *testing.T) {
	t.Run("worker records a cost while working", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		workerID := assignWorker(t, o)
		require.NoError(t, o.StartWork(workerID))

		cost, err := NewAdHocCost("tolls", kernel.Money(4500), PhaseEvaluation)
		require.NoError(t, err)
		require.NoError(t, o.AddAdHocCost(workerID, cost))

		require.Len(t, o.AdHocCosts(), 1)
		assert.Equal(t, "tolls", o.AdHocCosts()[0].Name())
	})

	t.Run("filters costs by phase", func(t *testing.T) {
		o, _ := newTestOrder(t, KindDeliveryOnly)
		delivererID := kernel.NewUUID()
		_, err := o.Assign(delivererID)
		require.NoError(t, err)

		fuel, err := NewAdHocCost("fuel", kernel.Money(60000), PhaseDelivery)
		require.NoError(t, err)
		require.NoError(t, o.AddAdHocCost(delivererID, fuel))

		assert.Len(t, o.AdHocCostsForPhase(PhaseDelivery), 1)
		assert.Empty(t, o.AdHocCostsForPhase(PhaseEvaluation))
	})

	t.Run("rejects unrelated actors", func(t *testing.T) {
		o, _ := newTestOrder(t, KindEvaluationDelivery)
		assignWorker(t, o)

		cost, err := NewAdHocCost("fuel", kernel.Money(1000), PhaseEvaluation)
		require.NoError(t, err)
		assert.ErrorIs(t, o.AddAdHocCost(kernel.NewUUID(), cost), ErrActorNotAllowed)
	})
}

func Test_RestoreOrder(t *testing.T) {
	t.Run("restores full state", func(t *testing.T) {
		workerID := kernel.NewUUID()
		delivererID := kernel.NewUUID()
		finishedAt := time.Now().Add(-time.Hour)
		cost, err := NewAdHocCost("waiting time", kernel.Money(10000), PhaseDelivery)
		require.NoError(t, err)

		o, err := RestoreOrder(RestoreParams{
			ID:                      kernel.NewUUID(),
			Kind:                    KindEvaluationDelivery,
			Status:                  Delivering,
			ClientID:                kernel.NewUUID(),
			WorkerID:                &workerID,
			DelivererID:             &delivererID,
			IsDeliveryTransferred:   true,
			Source:                  mustAddress(t, "a"),
			Destination:             mustAddress(t, "b"),
			Distance:                312.5,
			Costs:                   testCosts(),
			AdHocCosts:              []AdHocCost{cost},
			EvaluationArtifactCount: 3,
			EvaluationFinishedAt:    finishedAt,
			MileageBeforeDelivery:   42100,
		})

		require.NoError(t, err)
		assert.Equal(t, Delivering, o.Status())
		assert.True(t, o.IsDeliveryTransferred())
		assert.Equal(t, 3, o.EvaluationArtifactCount())
		assert.Equal(t, finishedAt, o.EvaluationFinishedAt())
		assert.Equal(t, 312.5, o.Distance())
		assert.Len(t, o.AdHocCosts(), 1)
		assert.NoError(t, o.Validate())
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		_, err := RestoreOrder(RestoreParams{
			ID:          kernel.NewUUID(),
			Kind:        KindDeliveryOnly,
			Status:      Unknown,
			ClientID:    kernel.NewUUID(),
			Source:      mustAddress(t, "a"),
			Destination: mustAddress(t, "b"),
		})
		assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	})
}

func Test_Order_Validate(t *testing.T) {
	var o *Order
	assert.ErrorIs(t, o.Validate(), ErrOrderIsNotConstructed)
	assert.ErrorIs(t, (&Order{}).Validate(), ErrOrderIsNotConstructed)
}
