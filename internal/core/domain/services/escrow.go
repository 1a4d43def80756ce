package services

import (
	"time"

	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/ledger"
	"carveyor/internal/core/domain/model/order"
)

// EscrowCoordinator reserves and releases assignment-fee escrows. It glues the
// fee calculator to the payee's ledger account so both sides of an assignment
// (order status, held fee) change together inside one unit of work.
type EscrowCoordinator struct {
	calc FeeCalculator
}

// NewEscrowCoordinator creates a new EscrowCoordinator instance.
func NewEscrowCoordinator(calc FeeCalculator) EscrowCoordinator {
	return EscrowCoordinator{calc: calc}
}

// Reserve assigns the actor to the order and holds the assignment fee on the
// actor's account. Insurance is checked before any state changes; the order
// rejects the assignment when it is not waiting for one, and the account
// rejects it when the balance cannot cover the fee.
func (e EscrowCoordinator) Reserve(
	o *order.Order,
	payee *actor.Actor,
	account *ledger.Account,
	now time.Time,
) (ledger.Entry, error) {
	if err := o.Validate(); err != nil {
		return ledger.Entry{}, err
	}
	if err := payee.Validate(); err != nil {
		return ledger.Entry{}, err
	}
	if err := account.Validate(); err != nil {
		return ledger.Entry{}, err
	}

	if !payee.IsWorker() {
		return ledger.Entry{}, actor.ErrNotAWorker
	}
	if !payee.HasValidInsurance(now) {
		return ledger.Entry{}, actor.ErrInsuranceExpired
	}

	// The fee depends on which role the order is waiting for, so it is
	// computed before the transition and reserved after it succeeds.
	asDeliverer := o.Status() == order.WaitingDeliverer
	fee := e.calc.AssignmentFee(o, asDeliverer)

	role := ledger.RoleWorker
	if asDeliverer {
		role = ledger.RoleDeliverer
	}
	if account.Balance().LessThan(fee) {
		return ledger.Entry{}, ledger.ErrInsufficientBalance
	}

	if _, err := o.Assign(payee.ID()); err != nil {
		return ledger.Entry{}, err
	}

	return account.ReserveEscrow(fee, o.ID(), role, now)
}

// Release refunds every live escrow the account holds against the order.
// Escrows already consumed by a settlement stay closed; releasing an order
// the account holds nothing against is a no-op.
func (e EscrowCoordinator) Release(
	o *order.Order,
	account *ledger.Account,
	now time.Time,
) ([]ledger.Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account.RefundEscrows(o.ID(), now), nil
}
