package queries

import (
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/pkg/guard"
)

var ErrGetWaitingOrdersQueryIsNotConstructed = errors.New(
	"GetWaitingOrdersQuery must be created via NewGetWaitingOrdersQuery constructor",
)

// GetWaitingOrdersQuery retrieves all orders waiting to be claimed, both fresh
// orders waiting for a worker and transferred delivery legs waiting for a
// deliverer. Workers browse this list to pick up jobs.
type GetWaitingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWaitingOrdersQuery creates a query to retrieve claimable orders.
// This is a parameterless query.
func NewGetWaitingOrdersQuery() GetWaitingOrdersQuery {
	return GetWaitingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetWaitingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetWaitingOrdersQueryIsNotConstructed)
}

// GetWaitingOrdersQueryResponse represents one claimable order. Status tells
// the caller which role the order is waiting for.
type GetWaitingOrdersQueryResponse struct {
	ID               kernel.UUID
	Kind             order.Kind
	Status           order.Status
	SourceRoad       string
	DestinationRoad  string
	StopoverCount    int
	DistanceKm       float64
	IsCostUnresolved bool
	EvaluationCost   kernel.Money
	DeliveringCost   kernel.Money
}
