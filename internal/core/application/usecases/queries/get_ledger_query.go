package queries

import (
	"errors"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"
	"carveyor/internal/pkg/errs"
	"carveyor/internal/pkg/guard"
)

var ErrGetLedgerQueryIsNotConstructed = errors.New(
	"GetLedgerQuery must be created via NewGetLedgerQuery constructor",
)

// GetLedgerQuery retrieves an actor's ledger entries within a time window,
// oldest first. The window is half-open: [from, to).
type GetLedgerQuery struct {
	actorID kernel.UUID
	from    time.Time
	to      time.Time

	guard guard.ConstructorGuard
}

// NewGetLedgerQuery creates a query for one actor's journal slice.
func NewGetLedgerQuery(actorID kernel.UUID, from, to time.Time) (GetLedgerQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetLedgerQuery{}, errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}
	if !from.Before(to) {
		return GetLedgerQuery{}, errs.NewValueIsInvalidError("time window")
	}

	return GetLedgerQuery{
		actorID: actorID,
		from:    from,
		to:      to,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerQueryIsNotConstructed)
}

// ActorID returns the actor whose journal is requested.
func (q GetLedgerQuery) ActorID() kernel.UUID {
	return q.actorID
}

// From returns the inclusive start of the window.
func (q GetLedgerQuery) From() time.Time {
	return q.from
}

// To returns the exclusive end of the window.
func (q GetLedgerQuery) To() time.Time {
	return q.to
}

// GetLedgerQueryResponse represents one ledger journal line.
type GetLedgerQueryResponse struct {
	ID           kernel.UUID
	Kind         ledger.EntryKind
	Amount       kernel.Money
	OrderID      *kernel.UUID
	Role         ledger.EscrowRole
	BalanceAfter kernel.Money
	OccurredAt   time.Time
}
