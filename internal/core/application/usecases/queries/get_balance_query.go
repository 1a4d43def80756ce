// Package queries contains read-only operations over the persistence model.
// Query handlers bypass the domain aggregates and read the tables directly,
// implementing the read side of the CQRS architecture.
package queries

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
	"carveyor/internal/pkg/guard"
)

var ErrGetBalanceQueryIsNotConstructed = errors.New(
	"GetBalanceQuery must be created via NewGetBalanceQuery constructor",
)

// GetBalanceQuery retrieves an actor's current balance together with the total
// held in open fee escrows.
//
// Example:
//
//	query, err := NewGetBalanceQuery(actorID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetBalanceQueryHandler(db)
//
//	balance, err := handler.Handle(ctx, query)
type GetBalanceQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBalanceQuery creates a query for one actor's balance.
func NewGetBalanceQuery(actorID kernel.UUID) (GetBalanceQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetBalanceQuery{}, errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	return GetBalanceQuery{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceQueryIsNotConstructed)
}

// ActorID returns the actor whose balance is requested.
func (q GetBalanceQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetBalanceQueryResponse represents one actor's balance snapshot. Actors with
// no ledger history report a zero balance rather than an error.
type GetBalanceQueryResponse struct {
	ActorID      kernel.UUID
	Balance      kernel.Money
	HeldInEscrow kernel.Money
}
