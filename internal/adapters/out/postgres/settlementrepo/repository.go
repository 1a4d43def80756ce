package settlementrepo

import (
	"context"
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/settlement"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// GormSettlementRepository implements SettlementRepository using GORM.
type GormSettlementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSettlementRepository creates a new GORM settlement repository.
func NewGormSettlementRepository(db *gorm.DB, tracker aggregateTracker) *GormSettlementRepository {
	return &GormSettlementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new settlement record. The unique index on (order, leg) turns a
// concurrent double settle into settlement.ErrDuplicateSettlement.
func (r *GormSettlementRepository) Add(ctx context.Context, record *settlement.Settlement) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return settlement.ErrDuplicateSettlement
		}
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// AddReferral saves a new referral settlement record.
func (r *GormSettlementRepository) AddReferral(ctx context.Context, record *settlement.ReferralSettlement) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := referralFromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
