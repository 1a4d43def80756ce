package orderrepo

import (
	"context"
	"errors"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// selfDeliveryStallWindow is how long a worker may sit on the delivery leg of
// their own order before the auto-handover job releases it to the pool.
const selfDeliveryStallWindow = 24 * time.Hour

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database together with its child rows.
// Save with FullSaveAssociations upserts all columns, which also persists
// clearing the deliverer on handover.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order by ID and locks its row for the duration of
// the surrounding transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).
		Preload("Stopovers", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("AdHocCosts", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllWaitingAssignment retrieves orders waiting for a worker or deliverer
// to claim them.
func (r *GormOrderRepository) GetAllWaitingAssignment(ctx context.Context) ([]*order.Order, error) {
	return r.getAll(r.db.WithContext(ctx).
		Where("status IN ?", []int{int(order.WaitingWorker), int(order.WaitingDeliverer)}))
}

// GetAllStalledSelfDeliveries retrieves orders whose worker kept the delivery
// leg but has not departed within the stall window. Inspection orders have no
// purchase decision, so the later of the two timestamps anchors the window.
func (r *GormOrderRepository) GetAllStalledSelfDeliveries(ctx context.Context) ([]*order.Order, error) {
	cutoff := time.Now().Add(-selfDeliveryStallWindow)
	return r.getAll(r.db.WithContext(ctx).
		Where("status = ?", int(order.WaitingDeliveryStart)).
		Where("worker_id IS NOT NULL AND deliverer_id = worker_id").
		Where("GREATEST(evaluation_finished_at, delivery_decided_at) < ?", cutoff))
}

func (r *GormOrderRepository) getAll(tx *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := tx.
		Preload("Stopovers", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("AdHocCosts", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}
