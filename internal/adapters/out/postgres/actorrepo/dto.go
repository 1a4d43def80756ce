// Package actorrepo provides data transfer objects and mapping functions for
// actor persistence. This package implements the repository pattern for the
// actor domain aggregate, handling the conversion between domain entities and
// database representations.
package actorrepo

import (
	"time"

	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ActorDTO represents the database structure for persisting actor aggregates.
// Clients and workers share one table; worker-only columns stay zero for
// clients and vice versa.
type ActorDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string
	Kind                int        `gorm:"index"`
	InsuranceExpiresAt  time.Time  `gorm:"type:timestamptz"`
	ReferralRevenueRate float64    `gorm:"type:numeric(5,2)"`
	EvaluationCount     int        `gorm:"column:total_evaluation_count"`
	InspectionCount     int        `gorm:"column:total_inspection_count"`
	DeliveryCount       int        `gorm:"column:total_delivery_count"`
	BasicEvaluationCost int64      `gorm:"type:bigint"`
	BasicInspectionCost int64      `gorm:"type:bigint"`
	ReferrerID          *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for actor entities.
func (ActorDTO) TableName() string {
	return "actors"
}

// fromDomain converts an actor domain aggregate to its database representation.
func fromDomain(aggregate *actor.Actor) ActorDTO {
	var referrerID *uuid.UUID
	if id := aggregate.Referrer(); id != nil {
		raw := id.Bytes()
		referrerID = &raw
	}

	return ActorDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		Kind:                int(aggregate.Kind()),
		InsuranceExpiresAt:  aggregate.InsuranceExpiresAt(),
		ReferralRevenueRate: aggregate.ReferralRevenueRate(),
		EvaluationCount:     aggregate.TotalEvaluationCount(),
		InspectionCount:     aggregate.TotalInspectionCount(),
		DeliveryCount:       aggregate.TotalDeliveryCount(),
		BasicEvaluationCost: aggregate.BasicEvaluationCost().Int64(),
		BasicInspectionCost: aggregate.BasicInspectionCost().Int64(),
		ReferrerID:          referrerID,
	}
}

// toDomain converts a database DTO to an actor domain aggregate.
func toDomain(dto ActorDTO) (*actor.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var referrerID *kernel.UUID
	if dto.ReferrerID != nil {
		rID, refErr := kernel.UUIDFromBytes((*dto.ReferrerID)[:])
		if refErr != nil {
			return nil, refErr
		}
		referrerID = &rID
	}

	return actor.RestoreActor(
		id,
		dto.Name,
		actor.Kind(dto.Kind),
		dto.InsuranceExpiresAt,
		dto.ReferralRevenueRate,
		dto.EvaluationCount,
		dto.InspectionCount,
		dto.DeliveryCount,
		kernel.Money(dto.BasicEvaluationCost),
		kernel.Money(dto.BasicInspectionCost),
		referrerID,
	)
}
