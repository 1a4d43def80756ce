package ledger

import (
	"fmt"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
)

// EntryKind classifies a ledger entry. The kind carries the direction of the
// movement: amounts themselves are always non-negative.
type EntryKind int

// Kind values are stored in the ledger_entries table and the refund-once
// partial index predicate names EntryFeeRefund by value. They are pinned
// explicitly so reordering the block cannot change what persisted rows mean.
const (
	// EntryUnknown catches uninitialized EntryKind values.
	EntryUnknown EntryKind = 0

	// EntryDeposit is a top-up credited to the account.
	EntryDeposit EntryKind = 1

	// EntryWithdrawal is a payout request debited from the account.
	EntryWithdrawal EntryKind = 2

	// EntryFeeEscrow is the assignment fee held back when an actor claims an
	// order. Debited on assignment, later consumed by settlement or refunded
	// on cancellation.
	EntryFeeEscrow EntryKind = 3

	// EntryFeeRefund credits a cancelled order's escrow back to the account.
	EntryFeeRefund EntryKind = 4

	// EntryRevenue credits the actor's earnings for a settled order leg.
	EntryRevenue EntryKind = 5

	// EntryReferralRevenue credits a referrer's share of a referred actor's
	// assignment fee.
	EntryReferralRevenue EntryKind = 6
)

// String returns the persisted/displayed name of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryDeposit:
		return "Deposit"
	case EntryWithdrawal:
		return "Withdrawal"
	case EntryFeeEscrow:
		return "FeeEscrow"
	case EntryFeeRefund:
		return "FeeRefund"
	case EntryRevenue:
		return "Revenue"
	case EntryReferralRevenue:
		return "ReferralRevenue"
	default:
		return "Unknown"
	}
}

// Validate checks if the EntryKind value is valid.
func (k EntryKind) Validate() error {
	switch k {
	case EntryDeposit, EntryWithdrawal, EntryFeeEscrow, EntryFeeRefund,
		EntryRevenue, EntryReferralRevenue:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("entry kind",
			fmt.Errorf("%d is not a valid entry kind", k))
	}
}

// IsCredit reports whether the kind increases the account balance.
func (k EntryKind) IsCredit() bool {
	switch k {
	case EntryDeposit, EntryFeeRefund, EntryRevenue, EntryReferralRevenue:
		return true
	default:
		return false
	}
}

// EscrowRole tags a fee escrow with the order role it secures: the worker's
// evaluation leg or the deliverer's delivery leg. Settlement consumes only the
// escrow of the leg being settled.
type EscrowRole int

// Role values are stored on ledger_entries rows and pinned for the same
// reason as the entry kinds.
const (
	// RoleNone is used on entries that are not fee escrows.
	RoleNone EscrowRole = 0

	// RoleWorker is the escrow of the evaluator/inspector assignment.
	RoleWorker EscrowRole = 1

	// RoleDeliverer is the escrow of the delivery-leg assignment.
	RoleDeliverer EscrowRole = 2
)

// String returns the persisted/displayed name of the role.
func (r EscrowRole) String() string {
	switch r {
	case RoleWorker:
		return "Worker"
	case RoleDeliverer:
		return "Deliverer"
	default:
		return "None"
	}
}

// Validate checks if the EscrowRole value is valid.
func (r EscrowRole) Validate() error {
	switch r {
	case RoleNone, RoleWorker, RoleDeliverer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("escrow role",
			fmt.Errorf("%d is not a valid escrow role", r))
	}
}

// Entry is one immutable line of the account journal. Only the escrow
// lifecycle flags (refunded, consumed) change after creation, and each can be
// set at most once.
type Entry struct {
	id     kernel.UUID
	kind   EntryKind
	amount kernel.Money
	// orderID ties the entry to the order that caused it; nil for deposits
	// and withdrawals.
	orderID *kernel.UUID
	role    EscrowRole
	// balanceAfter is the account balance right after this entry was applied.
	balanceAfter kernel.Money
	isRefunded   bool
	isConsumed   bool
	occurredAt   time.Time
}

// EntryRestoreParams carries the persisted state of an entry for RestoreEntry.
type EntryRestoreParams struct {
	ID           kernel.UUID
	Kind         EntryKind
	Amount       kernel.Money
	OrderID      *kernel.UUID
	Role         EscrowRole
	BalanceAfter kernel.Money
	IsRefunded   bool
	IsConsumed   bool
	OccurredAt   time.Time
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(params EntryRestoreParams) (Entry, error) {
	if err := params.ID.Validate(); err != nil {
		return Entry{}, err
	}
	if err := params.Kind.Validate(); err != nil {
		return Entry{}, err
	}
	if err := params.Role.Validate(); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:           params.ID,
		kind:         params.Kind,
		amount:       params.Amount,
		orderID:      params.OrderID,
		role:         params.Role,
		balanceAfter: params.BalanceAfter,
		isRefunded:   params.IsRefunded,
		isConsumed:   params.IsConsumed,
		occurredAt:   params.OccurredAt,
	}, nil
}

// ID returns the entry's unique identifier.
func (e Entry) ID() kernel.UUID {
	return e.id
}

// Kind returns the entry classification.
func (e Entry) Kind() EntryKind {
	return e.kind
}

// Amount returns the entry amount (always non-negative).
func (e Entry) Amount() kernel.Money {
	return e.amount
}

// OrderID returns the order this entry belongs to, or nil.
func (e Entry) OrderID() *kernel.UUID {
	return e.orderID
}

// Role returns the escrow role, or RoleNone for non-escrow entries.
func (e Entry) Role() EscrowRole {
	return e.role
}

// BalanceAfter returns the account balance right after this entry.
func (e Entry) BalanceAfter() kernel.Money {
	return e.balanceAfter
}

// IsRefunded reports whether this escrow was refunded by a cancellation.
func (e Entry) IsRefunded() bool {
	return e.isRefunded
}

// IsConsumed reports whether this escrow was consumed by a settlement.
func (e Entry) IsConsumed() bool {
	return e.isConsumed
}

// OccurredAt returns when the entry was created.
func (e Entry) OccurredAt() time.Time {
	return e.occurredAt
}

// IsOpenEscrow reports whether the entry is a fee escrow still awaiting
// settlement or refund.
func (e Entry) IsOpenEscrow() bool {
	return e.kind == EntryFeeEscrow && !e.isRefunded && !e.isConsumed
}

// isForOrder reports whether the entry belongs to the given order.
func (e Entry) isForOrder(orderID kernel.UUID) bool {
	return e.orderID != nil && e.orderID.IsEqual(orderID)
}
