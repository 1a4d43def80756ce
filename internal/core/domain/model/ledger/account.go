package ledger

import (
	"errors"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
)

// Domain errors for ledger operations.
var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not
	// created through NewAccount or RestoreAccount.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")
	// ErrInsufficientBalance is returned when a debit would take the balance
	// below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrEscrowNotFound is returned when consuming an escrow the account does
	// not hold open for the given order and role.
	ErrEscrowNotFound = errors.New("no open fee escrow for order")
	// ErrAlreadyRefunded is returned by persistence when a refund for the same
	// escrow was already recorded.
	ErrAlreadyRefunded = errors.New("fee escrow already refunded")
)

// Account is the aggregate root of one actor's balance ledger. The account id
// equals the actor id. All mutation goes through entry-producing methods;
// new entries and escrow flag updates are collected for the repository to
// persist within the surrounding unit of work.
type Account struct {
	id      kernel.UUID
	balance kernel.Money

	// openEscrows are the fee escrow entries not yet consumed or refunded,
	// loaded by the repository alongside the balance.
	openEscrows []Entry

	newEntries     []Entry
	updatedEntries []Entry

	isConstructed bool
}

// NewAccount creates an empty account for an actor.
func NewAccount(actorID kernel.UUID) (*Account, error) {
	if err := actorID.Validate(); err != nil {
		return nil, err
	}

	return &Account{
		id:            actorID,
		isConstructed: true,
	}, nil
}

// RestoreAccount reconstructs an account from persistence. openEscrows must
// contain every fee escrow entry of the account that is neither consumed nor
// refunded.
func RestoreAccount(actorID kernel.UUID, balance kernel.Money, openEscrows []Entry) (*Account, error) {
	if err := actorID.Validate(); err != nil {
		return nil, err
	}
	for _, e := range openEscrows {
		if !e.IsOpenEscrow() {
			return nil, errs.NewValueIsInvalidError("open escrows")
		}
	}

	return &Account{
		id:            actorID,
		balance:       balance,
		openEscrows:   openEscrows,
		isConstructed: true,
	}, nil
}

// Validate ensures the Account was created through a constructor.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// ID returns the account identifier (equal to the actor id).
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Balance returns the current balance.
func (a *Account) Balance() kernel.Money {
	return a.balance
}

// OpenEscrows returns the fee escrows awaiting settlement or refund.
func (a *Account) OpenEscrows() []Entry {
	return a.openEscrows
}

// NewEntries returns the entries created since the account was loaded, in
// order of creation. The repository inserts them on save.
func (a *Account) NewEntries() []Entry {
	return a.newEntries
}

// UpdatedEntries returns previously persisted entries whose escrow flags
// changed since the account was loaded. The repository updates them on save.
func (a *Account) UpdatedEntries() []Entry {
	return a.updatedEntries
}

// Deposit credits a top-up to the account.
func (a *Account) Deposit(amount kernel.Money, now time.Time) (Entry, error) {
	if amount <= 0 {
		return Entry{}, errs.NewValueIsInvalidError("deposit amount")
	}
	return a.credit(EntryDeposit, amount, nil, RoleNone, now), nil
}

// Withdraw debits a payout request from the account.
func (a *Account) Withdraw(amount kernel.Money, now time.Time) (Entry, error) {
	if amount <= 0 {
		return Entry{}, errs.NewValueIsInvalidError("withdrawal amount")
	}
	if a.balance.LessThan(amount) {
		return Entry{}, ErrInsufficientBalance
	}
	return a.debit(EntryWithdrawal, amount, nil, RoleNone, now), nil
}

// ReserveEscrow holds back the assignment fee when the actor claims an order
// role. Fails with ErrInsufficientBalance when the account cannot cover it.
func (a *Account) ReserveEscrow(amount kernel.Money, orderID kernel.UUID, role EscrowRole, now time.Time) (Entry, error) {
	if err := orderID.Validate(); err != nil {
		return Entry{}, err
	}
	if role != RoleWorker && role != RoleDeliverer {
		return Entry{}, errs.NewValueIsInvalidError("escrow role")
	}
	if a.balance.LessThan(amount) {
		return Entry{}, ErrInsufficientBalance
	}

	entry := a.debit(EntryFeeEscrow, amount, &orderID, role, now)
	a.openEscrows = append(a.openEscrows, entry)
	return entry, nil
}

// ConsumeEscrow marks the open escrow of one order role as spent by its
// settlement and returns it. A consumed escrow can no longer be refunded.
func (a *Account) ConsumeEscrow(orderID kernel.UUID, role EscrowRole) (Entry, error) {
	for i, e := range a.openEscrows {
		if !e.isForOrder(orderID) || e.Role() != role {
			continue
		}

		e.isConsumed = true
		a.closeEscrow(i, e)
		return e, nil
	}
	return Entry{}, ErrEscrowNotFound
}

// RefundEscrows refunds every open escrow of a cancelled order: each one is
// marked refunded and its amount credited back with a matching FeeRefund
// entry. Escrows already consumed by a settlement are left untouched.
// Returns the refund entries (possibly none).
func (a *Account) RefundEscrows(orderID kernel.UUID, now time.Time) []Entry {
	var refunds []Entry
	remaining := a.openEscrows[:0]
	for _, e := range a.openEscrows {
		if !e.isForOrder(orderID) {
			remaining = append(remaining, e)
			continue
		}

		e.isRefunded = true
		a.markUpdated(e)
		refunds = append(refunds, a.credit(EntryFeeRefund, e.Amount(), e.OrderID(), e.Role(), now))
	}
	a.openEscrows = remaining
	return refunds
}

// CreditRevenue credits the actor's net earnings for a settled order leg.
// A zero amount produces no entry; entry amounts are always non-negative, so
// a negative amount is rejected rather than silently debited.
func (a *Account) CreditRevenue(amount kernel.Money, orderID kernel.UUID, now time.Time) (Entry, error) {
	if err := orderID.Validate(); err != nil {
		return Entry{}, err
	}
	if amount < 0 {
		return Entry{}, errs.NewValueIsInvalidError("revenue amount")
	}
	if amount == 0 {
		return Entry{}, nil
	}
	return a.credit(EntryRevenue, amount, &orderID, RoleNone, now), nil
}

// CreditReferralRevenue credits a referrer's share of a referred actor's
// assignment fee. A zero amount produces no entry, a negative one is rejected.
func (a *Account) CreditReferralRevenue(amount kernel.Money, orderID kernel.UUID, now time.Time) (Entry, error) {
	if err := orderID.Validate(); err != nil {
		return Entry{}, err
	}
	if amount < 0 {
		return Entry{}, errs.NewValueIsInvalidError("referral revenue amount")
	}
	if amount == 0 {
		return Entry{}, nil
	}
	return a.credit(EntryReferralRevenue, amount, &orderID, RoleNone, now), nil
}

func (a *Account) credit(kind EntryKind, amount kernel.Money, orderID *kernel.UUID, role EscrowRole, now time.Time) Entry {
	a.balance = a.balance.Add(amount)
	return a.appendEntry(kind, amount, orderID, role, now)
}

func (a *Account) debit(kind EntryKind, amount kernel.Money, orderID *kernel.UUID, role EscrowRole, now time.Time) Entry {
	a.balance -= amount
	return a.appendEntry(kind, amount, orderID, role, now)
}

func (a *Account) appendEntry(kind EntryKind, amount kernel.Money, orderID *kernel.UUID, role EscrowRole, now time.Time) Entry {
	entry := Entry{
		id:           kernel.NewUUID(),
		kind:         kind,
		amount:       amount,
		orderID:      orderID,
		role:         role,
		balanceAfter: a.balance,
		occurredAt:   now,
	}
	a.newEntries = append(a.newEntries, entry)
	return entry
}

// closeEscrow removes the escrow at index i from the open set and records its
// flag change for persistence.
func (a *Account) closeEscrow(i int, updated Entry) {
	a.openEscrows = append(a.openEscrows[:i], a.openEscrows[i+1:]...)
	a.markUpdated(updated)
}

// markUpdated records an escrow flag change, routing it to the insert list
// when the entry was created in this unit of work.
func (a *Account) markUpdated(e Entry) {
	for i, n := range a.newEntries {
		if n.id.IsEqual(e.id) {
			a.newEntries[i] = e
			return
		}
	}
	a.updatedEntries = append(a.updatedEntries, e)
}
