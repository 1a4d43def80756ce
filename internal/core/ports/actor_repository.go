// Package ports defines repository and collaborator interfaces for the
// marketplace core. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/kernel"
)

// ActorRepository defines the persistence contract for actor aggregates
// (clients and workers with their profiles and lifetime counters).
type ActorRepository interface {
	// Add persists a new actor aggregate to storage.
	// The actor must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *actor.Actor) error

	// Update persists changes to an existing actor aggregate.
	// The actor must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *actor.Actor) error

	// Get retrieves an actor aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error)
}
