// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Route stopovers and ad-hoc cost items live in child tables keyed by the
// order id; both are append-only, so rows are identified by their position.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind                  int        `gorm:"not null"`
	Status                int        `gorm:"not null;index"`
	ClientID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	WorkerID              *uuid.UUID `gorm:"type:uuid;index"`
	DelivererID           *uuid.UUID `gorm:"type:uuid;index"`
	IsDeliveryTransferred bool

	Source      AddressDTO `gorm:"embedded;embeddedPrefix:source_"`
	Destination AddressDTO `gorm:"embedded;embeddedPrefix:destination_"`
	DistanceKm  float64
	Stopovers   []StopoverDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	IsCostUnresolved        bool
	EvaluationCost          int64          `gorm:"type:bigint"`
	InspectionCost          int64          `gorm:"type:bigint"`
	DeliveringCost          int64          `gorm:"type:bigint"`
	AdditionalSuggestedCost int64          `gorm:"type:bigint"`
	AdHocCosts              []AdHocCostDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	IsOnsitePayment         bool
	SkipReceiptConfirmation bool
	HookURL                 string

	EvaluationArtifactCount int
	EvaluationFinishedAt    time.Time `gorm:"type:timestamptz"`
	DeliveryDecidedAt       time.Time `gorm:"type:timestamptz"`
	MileageBeforeDelivery   int64
	MileageAfterDelivery    int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded postal address within the order table.
type AddressDTO struct {
	Road   string
	Detail string
}

// StopoverDTO represents one intermediate stop of an order's route.
// Identified by (order id, position) since stopovers never change once set.
type StopoverDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey"`
	Road    string
	Detail  string
}

// TableName specifies the database table name for stopover rows.
func (StopoverDTO) TableName() string {
	return "order_stopovers"
}

// AdHocCostDTO represents one in-progress cost item recorded on an order.
// Identified by (order id, position) since cost items are append-only.
type AdHocCostDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey"`
	Name    string    `gorm:"not null"`
	Amount  int64     `gorm:"type:bigint"`
	Phase   int
}

// TableName specifies the database table name for ad-hoc cost rows.
func (AdHocCostDTO) TableName() string {
	return "order_adhoc_costs"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var workerID *uuid.UUID
	if id := aggregate.Worker(); id != nil {
		raw := id.Bytes()
		workerID = &raw
	}
	var delivererID *uuid.UUID
	if id := aggregate.Deliverer(); id != nil {
		raw := id.Bytes()
		delivererID = &raw
	}

	stopovers := make([]StopoverDTO, 0, len(aggregate.Stopovers()))
	for i, s := range aggregate.Stopovers() {
		stopovers = append(stopovers, StopoverDTO{
			OrderID: orderID,
			Seq:     i,
			Road:    s.Road(),
			Detail:  s.Detail(),
		})
	}

	adHocCosts := make([]AdHocCostDTO, 0, len(aggregate.AdHocCosts()))
	for i, c := range aggregate.AdHocCosts() {
		adHocCosts = append(adHocCosts, AdHocCostDTO{
			OrderID: orderID,
			Seq:     i,
			Name:    c.Name(),
			Amount:  c.Amount().Int64(),
			Phase:   int(c.Phase()),
		})
	}

	costs := aggregate.Costs()
	return OrderDTO{
		ID:                    orderID,
		Kind:                  int(aggregate.Kind()),
		Status:                int(aggregate.Status()),
		ClientID:              aggregate.Client().Bytes(),
		WorkerID:              workerID,
		DelivererID:           delivererID,
		IsDeliveryTransferred: aggregate.IsDeliveryTransferred(),
		Source: AddressDTO{
			Road:   aggregate.Source().Road(),
			Detail: aggregate.Source().Detail(),
		},
		Destination: AddressDTO{
			Road:   aggregate.Destination().Road(),
			Detail: aggregate.Destination().Detail(),
		},
		DistanceKm:              aggregate.Distance(),
		Stopovers:               stopovers,
		IsCostUnresolved:        aggregate.IsCostUnresolved(),
		EvaluationCost:          costs.Evaluation.Int64(),
		InspectionCost:          costs.Inspection.Int64(),
		DeliveringCost:          costs.Delivering.Int64(),
		AdditionalSuggestedCost: costs.AdditionalSuggested.Int64(),
		AdHocCosts:              adHocCosts,
		IsOnsitePayment:         aggregate.IsOnsitePayment(),
		SkipReceiptConfirmation: aggregate.SkipReceiptConfirmation(),
		HookURL:                 aggregate.HookURL(),
		EvaluationArtifactCount: aggregate.EvaluationArtifactCount(),
		EvaluationFinishedAt:    aggregate.EvaluationFinishedAt(),
		DeliveryDecidedAt:       aggregate.DeliveryDecidedAt(),
		MileageBeforeDelivery:   aggregate.MileageBeforeDelivery(),
		MileageAfterDelivery:    aggregate.MileageAfterDelivery(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if dto.WorkerID != nil {
		wID, wErr := kernel.UUIDFromBytes((*dto.WorkerID)[:])
		if wErr != nil {
			return nil, wErr
		}
		workerID = &wID
	}
	var delivererID *kernel.UUID
	if dto.DelivererID != nil {
		dID, dErr := kernel.UUIDFromBytes((*dto.DelivererID)[:])
		if dErr != nil {
			return nil, dErr
		}
		delivererID = &dID
	}

	source, err := kernel.NewAddress(dto.Source.Road, dto.Source.Detail)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewAddress(dto.Destination.Road, dto.Destination.Detail)
	if err != nil {
		return nil, err
	}

	stopovers := make([]kernel.Address, 0, len(dto.Stopovers))
	for _, s := range dto.Stopovers {
		stopover, sErr := kernel.NewAddress(s.Road, s.Detail)
		if sErr != nil {
			return nil, sErr
		}
		stopovers = append(stopovers, stopover)
	}

	adHocCosts := make([]order.AdHocCost, 0, len(dto.AdHocCosts))
	for _, c := range dto.AdHocCosts {
		cost, cErr := order.NewAdHocCost(c.Name, kernel.Money(c.Amount), order.WorkPhase(c.Phase))
		if cErr != nil {
			return nil, cErr
		}
		adHocCosts = append(adHocCosts, cost)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                    id,
		Kind:                  order.Kind(dto.Kind),
		Status:                order.Status(dto.Status),
		ClientID:              clientID,
		WorkerID:              workerID,
		DelivererID:           delivererID,
		IsDeliveryTransferred: dto.IsDeliveryTransferred,
		Source:                source,
		Destination:           destination,
		Stopovers:             stopovers,
		Distance:              dto.DistanceKm,
		IsCostUnresolved:      dto.IsCostUnresolved,
		Costs: order.Costs{
			Evaluation:          kernel.Money(dto.EvaluationCost),
			Inspection:          kernel.Money(dto.InspectionCost),
			Delivering:          kernel.Money(dto.DeliveringCost),
			AdditionalSuggested: kernel.Money(dto.AdditionalSuggestedCost),
		},
		AdHocCosts:              adHocCosts,
		IsOnsitePayment:         dto.IsOnsitePayment,
		SkipReceiptConfirmation: dto.SkipReceiptConfirmation,
		HookURL:                 dto.HookURL,
		EvaluationArtifactCount: dto.EvaluationArtifactCount,
		EvaluationFinishedAt:    dto.EvaluationFinishedAt,
		DeliveryDecidedAt:       dto.DeliveryDecidedAt,
		MileageBeforeDelivery:   dto.MileageBeforeDelivery,
		MileageAfterDelivery:    dto.MileageAfterDelivery,
	})
}
