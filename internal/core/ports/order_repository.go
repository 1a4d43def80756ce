package ports

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// ad-hoc cost items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction, serializing concurrent transitions on the
	// same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllWaitingAssignment retrieves orders currently waiting for a worker
	// or deliverer to claim them.
	GetAllWaitingAssignment(ctx context.Context) ([]*order.Order, error)

	// GetAllStalledSelfDeliveries retrieves orders whose assigned worker still
	// holds the delivery leg although the delivery has not started. Used by
	// the auto-handover job.
	GetAllStalledSelfDeliveries(ctx context.Context) ([]*order.Order, error)
}
