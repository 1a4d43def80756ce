// Package settlement contains the per-leg settlement records produced when an
// order leg completes. A Settlement is a durable snapshot of what the actor
// earned and what was withheld; it exists even for on-site payments that move
// no ledger money, so monthly statements stay complete.
package settlement

import (
	"errors"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
)

// Domain errors for settlement records.
var (
	// ErrDuplicateSettlement is returned when a settlement for the same order
	// and leg already exists. Each leg settles exactly once.
	ErrDuplicateSettlement = errors.New("order leg already settled")
	// ErrSettlementIsNotConstructed is returned when a Settlement instance was
	// not created through NewSettlement or RestoreSettlement.
	ErrSettlementIsNotConstructed = errors.New("Settlement must be created via NewSettlement or RestoreSettlement")
)

// Leg identifies which half of an order a settlement covers.
type Leg int

const (
	// LegUnknown catches uninitialized Leg values.
	LegUnknown Leg = iota

	// LegEvaluation covers the evaluation/inspection work.
	LegEvaluation

	// LegDelivery covers the delivery drive.
	LegDelivery
)

// String returns the persisted/displayed name of the leg.
func (l Leg) String() string {
	switch l {
	case LegEvaluation:
		return "Evaluation"
	case LegDelivery:
		return "Delivery"
	default:
		return "Unknown"
	}
}

// Validate checks if the Leg value is valid.
func (l Leg) Validate() error {
	if l != LegEvaluation && l != LegDelivery {
		return errs.NewValueIsInvalidError("settlement leg")
	}
	return nil
}

// Settlement records one actor's earnings for one completed order leg:
// the gross revenue, the statutory withholdings, and whether the money
// actually moved through the ledger or was collected on site.
type Settlement struct {
	id      kernel.UUID
	orderID kernel.UUID
	actorID kernel.UUID
	leg     Leg

	// revenue is the gross amount earned for the leg, before withholdings.
	revenue kernel.Money
	// withholdingTax is the income tax withheld from the revenue.
	withholdingTax kernel.Money
	// insuranceWithholding is the industrial-accident insurance contribution
	// withheld from the revenue.
	insuranceWithholding kernel.Money

	// isOnsitePayment marks settlements whose revenue was collected in cash
	// on site and therefore produced no ledger credit.
	isOnsitePayment bool

	settledAt time.Time

	isConstructed bool
}

// NewSettlement creates a settlement record with a fresh identifier.
func NewSettlement(
	orderID kernel.UUID,
	actorID kernel.UUID,
	leg Leg,
	revenue kernel.Money,
	withholdingTax kernel.Money,
	insuranceWithholding kernel.Money,
	isOnsitePayment bool,
	settledAt time.Time,
) (*Settlement, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		leg.Validate(),
	); err != nil {
		return nil, err
	}

	return &Settlement{
		id:                   kernel.NewUUID(),
		orderID:              orderID,
		actorID:              actorID,
		leg:                  leg,
		revenue:              revenue,
		withholdingTax:       withholdingTax,
		insuranceWithholding: insuranceWithholding,
		isOnsitePayment:      isOnsitePayment,
		settledAt:            settledAt,
		isConstructed:        true,
	}, nil
}

// RestoreParams carries the persisted state of a settlement.
type RestoreParams struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	ActorID              kernel.UUID
	Leg                  Leg
	Revenue              kernel.Money
	WithholdingTax       kernel.Money
	InsuranceWithholding kernel.Money
	IsOnsitePayment      bool
	SettledAt            time.Time
}

// RestoreSettlement reconstructs a settlement from persistence.
func RestoreSettlement(params RestoreParams) (*Settlement, error) {
	if err := errors.Join(
		params.ID.Validate(),
		params.OrderID.Validate(),
		params.ActorID.Validate(),
		params.Leg.Validate(),
	); err != nil {
		return nil, err
	}

	return &Settlement{
		id:                   params.ID,
		orderID:              params.OrderID,
		actorID:              params.ActorID,
		leg:                  params.Leg,
		revenue:              params.Revenue,
		withholdingTax:       params.WithholdingTax,
		insuranceWithholding: params.InsuranceWithholding,
		isOnsitePayment:      params.IsOnsitePayment,
		settledAt:            params.SettledAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Settlement was created through a constructor.
func (s *Settlement) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSettlementIsNotConstructed
	}
	return nil
}

// ID returns the settlement's unique identifier.
func (s *Settlement) ID() kernel.UUID {
	return s.id
}

// OrderID returns the settled order.
func (s *Settlement) OrderID() kernel.UUID {
	return s.orderID
}

// ActorID returns the actor the settlement belongs to.
func (s *Settlement) ActorID() kernel.UUID {
	return s.actorID
}

// Leg returns the order half this settlement covers.
func (s *Settlement) Leg() Leg {
	return s.leg
}

// Revenue returns the gross earnings before withholdings.
func (s *Settlement) Revenue() kernel.Money {
	return s.revenue
}

// WithholdingTax returns the income tax withheld.
func (s *Settlement) WithholdingTax() kernel.Money {
	return s.withholdingTax
}

// InsuranceWithholding returns the insurance contribution withheld.
func (s *Settlement) InsuranceWithholding() kernel.Money {
	return s.insuranceWithholding
}

// IsOnsitePayment reports whether the revenue was collected in cash on site.
func (s *Settlement) IsOnsitePayment() bool {
	return s.isOnsitePayment
}

// SettledAt returns when the leg settled.
func (s *Settlement) SettledAt() time.Time {
	return s.settledAt
}

// NetRevenue returns the revenue after withholdings; this is the amount
// credited to the actor's ledger (unless paid on site).
func (s *Settlement) NetRevenue() kernel.Money {
	return s.revenue - s.withholdingTax - s.insuranceWithholding
}

// ReferralSettlement records a referrer's share of a referred actor's
// assignment fee for one settled order leg.
type ReferralSettlement struct {
	id              kernel.UUID
	orderID         kernel.UUID
	referrerID      kernel.UUID
	referredActorID kernel.UUID

	// amount is the referrer's gross share of the assignment fee.
	amount kernel.Money
	// withholdingTax is the income tax withheld from the share.
	withholdingTax kernel.Money

	settledAt time.Time

	isConstructed bool
}

// NewReferralSettlement creates a referral settlement record with a fresh
// identifier.
func NewReferralSettlement(
	orderID kernel.UUID,
	referrerID kernel.UUID,
	referredActorID kernel.UUID,
	amount kernel.Money,
	withholdingTax kernel.Money,
	settledAt time.Time,
) (*ReferralSettlement, error) {
	if err := errors.Join(
		orderID.Validate(),
		referrerID.Validate(),
		referredActorID.Validate(),
	); err != nil {
		return nil, err
	}

	return &ReferralSettlement{
		id:              kernel.NewUUID(),
		orderID:         orderID,
		referrerID:      referrerID,
		referredActorID: referredActorID,
		amount:          amount,
		withholdingTax:  withholdingTax,
		settledAt:       settledAt,
		isConstructed:   true,
	}, nil
}

// ReferralRestoreParams carries the persisted state of a referral settlement.
type ReferralRestoreParams struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	ReferrerID      kernel.UUID
	ReferredActorID kernel.UUID
	Amount          kernel.Money
	WithholdingTax  kernel.Money
	SettledAt       time.Time
}

// RestoreReferralSettlement reconstructs a referral settlement from
// persistence.
func RestoreReferralSettlement(params ReferralRestoreParams) (*ReferralSettlement, error) {
	if err := errors.Join(
		params.ID.Validate(),
		params.OrderID.Validate(),
		params.ReferrerID.Validate(),
		params.ReferredActorID.Validate(),
	); err != nil {
		return nil, err
	}

	return &ReferralSettlement{
		id:              params.ID,
		orderID:         params.OrderID,
		referrerID:      params.ReferrerID,
		referredActorID: params.ReferredActorID,
		amount:          params.Amount,
		withholdingTax:  params.WithholdingTax,
		settledAt:       params.SettledAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the ReferralSettlement was created through a constructor.
func (r *ReferralSettlement) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrSettlementIsNotConstructed
	}
	return nil
}

// ID returns the referral settlement's unique identifier.
func (r *ReferralSettlement) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order whose fee generated the share.
func (r *ReferralSettlement) OrderID() kernel.UUID {
	return r.orderID
}

// ReferrerID returns the actor receiving the share.
func (r *ReferralSettlement) ReferrerID() kernel.UUID {
	return r.referrerID
}

// ReferredActorID returns the actor whose assignment fee was shared.
func (r *ReferralSettlement) ReferredActorID() kernel.UUID {
	return r.referredActorID
}

// Amount returns the referrer's gross share.
func (r *ReferralSettlement) Amount() kernel.Money {
	return r.amount
}

// WithholdingTax returns the income tax withheld from the share.
func (r *ReferralSettlement) WithholdingTax() kernel.Money {
	return r.withholdingTax
}

// SettledAt returns when the share settled.
func (r *ReferralSettlement) SettledAt() time.Time {
	return r.settledAt
}

// NetAmount returns the share after tax; this is the amount credited to the
// referrer's ledger.
func (r *ReferralSettlement) NetAmount() kernel.Money {
	return r.amount - r.withholdingTax
}
