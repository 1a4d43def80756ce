// Package settlementrepo provides data transfer objects and mapping functions
// for settlement persistence. Settlement rows are immutable once written; the
// unique index on (order, leg) makes each leg settle exactly once.
package settlementrepo

import (
	"time"

	"carveyor/internal/core/domain/model/settlement"

	"github.com/google/uuid"
)

// SettlementDTO represents the database structure for settlement records.
type SettlementDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_settle_once"`
	ActorID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Leg                  int       `gorm:"not null;uniqueIndex:idx_settle_once"`
	Revenue              int64     `gorm:"type:bigint;not null"`
	WithholdingTax       int64     `gorm:"type:bigint;not null"`
	InsuranceWithholding int64     `gorm:"type:bigint;not null"`
	IsOnsitePayment      bool
	SettledAt            time.Time `gorm:"type:timestamptz;not null;index"`
}

// TableName specifies the database table name for settlement records.
func (SettlementDTO) TableName() string {
	return "settlements"
}

// ReferralSettlementDTO represents the database structure for referral
// settlement records.
type ReferralSettlementDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferrerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferredActorID uuid.UUID `gorm:"type:uuid;not null"`
	Amount          int64     `gorm:"type:bigint;not null"`
	WithholdingTax  int64     `gorm:"type:bigint;not null"`
	SettledAt       time.Time `gorm:"type:timestamptz;not null;index"`
}

// TableName specifies the database table name for referral settlement records.
func (ReferralSettlementDTO) TableName() string {
	return "referral_settlements"
}

// fromDomain converts a settlement record to its database representation.
func fromDomain(record *settlement.Settlement) SettlementDTO {
	return SettlementDTO{
		ID:                   record.ID().Bytes(),
		OrderID:              record.OrderID().Bytes(),
		ActorID:              record.ActorID().Bytes(),
		Leg:                  int(record.Leg()),
		Revenue:              record.Revenue().Int64(),
		WithholdingTax:       record.WithholdingTax().Int64(),
		InsuranceWithholding: record.InsuranceWithholding().Int64(),
		IsOnsitePayment:      record.IsOnsitePayment(),
		SettledAt:            record.SettledAt(),
	}
}

// referralFromDomain converts a referral settlement record to its database
// representation.
func referralFromDomain(record *settlement.ReferralSettlement) ReferralSettlementDTO {
	return ReferralSettlementDTO{
		ID:              record.ID().Bytes(),
		OrderID:         record.OrderID().Bytes(),
		ReferrerID:      record.ReferrerID().Bytes(),
		ReferredActorID: record.ReferredActorID().Bytes(),
		Amount:          record.Amount().Int64(),
		WithholdingTax:  record.WithholdingTax().Int64(),
		SettledAt:       record.SettledAt(),
	}
}
