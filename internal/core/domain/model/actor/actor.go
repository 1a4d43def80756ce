package actor

import (
	"errors"
	"fmt"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
)

const (
	// defaultReferralRevenueRate is the referral commission percentage applied
	// when a worker is created without an explicit rate.
	defaultReferralRevenueRate = 5.0
	// minReferralRevenueRate and maxReferralRevenueRate bound the commission
	// percentage a referrer can earn from a referred client's orders.
	minReferralRevenueRate = 1.0
	maxReferralRevenueRate = 30.0
)

// Domain errors for actor operations.
var (
	// ErrNameIsRequired is returned when attempting to create an actor without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrActorIsNotConstructed is returned when using an improperly initialized Actor.
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewClient, NewWorker, or RestoreActor")
	// ErrInsuranceExpired is returned when a worker without valid insurance
	// attempts to take an order.
	ErrInsuranceExpired = errors.New("insurance expired")
	// ErrNotAWorker is returned when a worker-only operation is attempted on a client.
	ErrNotAWorker = errors.New("actor is not a worker")
)

// Kind distinguishes the two account types in the marketplace.
type Kind int

const (
	// KindUnknown catches uninitialized Kind values.
	KindUnknown Kind = iota

	// KindClient is a dealer account that submits orders.
	KindClient

	// KindWorker is a field account (evaluator or driver) that claims and
	// executes orders and receives settlements.
	KindWorker
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindClient:
		return "Client"
	case KindWorker:
		return "Worker"
	default:
		return "Unknown"
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if k != KindClient && k != KindWorker {
		return errs.NewValueIsInvalidErrorWithCause("actor kind",
			fmt.Errorf("%d is not a valid actor kind", k))
	}
	return nil
}

// Actor is an account holder: a client (dealer) that submits orders, or a
// worker (evaluator/driver) that executes them. It is the aggregate root for
// profile data the core needs to make assignment and settlement decisions:
// insurance validity, referral commission rate, lifetime work counters, and
// the client's default cost schedule.
//
// An actor's spendable balance is not stored here; it lives in the ledger
// account keyed by the actor's id.
type Actor struct {
	id   kernel.UUID
	name string
	kind Kind

	// Worker profile.

	// insuranceExpiresAt gates assignment: a worker whose insurance lapsed
	// cannot take orders. Zero means no insurance on file.
	insuranceExpiresAt time.Time
	// referralRevenueRate is the percentage of a referred client's escrowed
	// assignment fee paid to this actor as referral revenue.
	referralRevenueRate float64
	// Lifetime counters, incremented once per settled leg.
	totalEvaluationCount int
	totalInspectionCount int
	totalDeliveryCount   int

	// Client profile.

	// basicEvaluationCost and basicInspectionCost are the client's default
	// costs applied when an order is created without explicit ones.
	basicEvaluationCost kernel.Money
	basicInspectionCost kernel.Money
	// referrerID references the actor that brought this client in, if any.
	referrerID *kernel.UUID

	isConstructed bool
}

// NewClient creates a client actor with its default cost schedule and an
// optional referrer.
func NewClient(
	id kernel.UUID,
	name string,
	basicEvaluationCost kernel.Money,
	basicInspectionCost kernel.Money,
	referrerID *kernel.UUID,
) (*Actor, error) {
	a := &Actor{
		kind:          KindClient,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setReferrerID(referrerID),
	); err != nil {
		return nil, err
	}

	a.basicEvaluationCost = basicEvaluationCost
	a.basicInspectionCost = basicInspectionCost
	return a, nil
}

// NewWorker creates a worker actor. A zero insuranceExpiresAt means no
// insurance is on file yet; such a worker cannot be assigned. A zero
// referralRevenueRate falls back to the default.
func NewWorker(
	id kernel.UUID,
	name string,
	insuranceExpiresAt time.Time,
	referralRevenueRate float64,
) (*Actor, error) {
	a := &Actor{
		kind:          KindWorker,
		isConstructed: true,
	}

	if referralRevenueRate == 0 {
		referralRevenueRate = defaultReferralRevenueRate
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setReferralRevenueRate(referralRevenueRate),
	); err != nil {
		return nil, err
	}

	a.insuranceExpiresAt = insuranceExpiresAt
	return a, nil
}

// RestoreActor reconstructs an Actor from persistence, including worker
// counters and client profile fields.
func RestoreActor(
	id kernel.UUID,
	name string,
	kind Kind,
	insuranceExpiresAt time.Time,
	referralRevenueRate float64,
	evaluationCount, inspectionCount, deliveryCount int,
	basicEvaluationCost, basicInspectionCost kernel.Money,
	referrerID *kernel.UUID,
) (*Actor, error) {
	a := &Actor{
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setKind(kind),
		a.setReferrerID(referrerID),
	); err != nil {
		return nil, err
	}

	if a.kind == KindWorker {
		if referralRevenueRate == 0 {
			referralRevenueRate = defaultReferralRevenueRate
		}
		if err := a.setReferralRevenueRate(referralRevenueRate); err != nil {
			return nil, err
		}
	}

	a.insuranceExpiresAt = insuranceExpiresAt
	a.totalEvaluationCount = evaluationCount
	a.totalInspectionCount = inspectionCount
	a.totalDeliveryCount = deliveryCount
	a.basicEvaluationCost = basicEvaluationCost
	a.basicInspectionCost = basicInspectionCost
	return a, nil
}

// Validate ensures the Actor was created through a constructor.
func (a *Actor) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a *Actor) ID() kernel.UUID {
	return a.id
}

// Name returns the actor's display name.
func (a *Actor) Name() string {
	return a.name
}

// Kind returns the account type.
func (a *Actor) Kind() Kind {
	return a.kind
}

// IsWorker reports whether the actor is a worker account.
func (a *Actor) IsWorker() bool {
	return a.kind == KindWorker
}

// InsuranceExpiresAt returns the insurance expiry date; zero if none on file.
func (a *Actor) InsuranceExpiresAt() time.Time {
	return a.insuranceExpiresAt
}

// HasValidInsurance reports whether the worker's insurance covers the given
// moment. Workers without insurance on file are never covered.
func (a *Actor) HasValidInsurance(now time.Time) bool {
	if a.insuranceExpiresAt.IsZero() {
		return false
	}
	return !a.insuranceExpiresAt.Before(now)
}

// ReferralRevenueRate returns the referral commission percentage.
func (a *Actor) ReferralRevenueRate() float64 {
	return a.referralRevenueRate
}

// TotalEvaluationCount returns the number of settled evaluation legs.
func (a *Actor) TotalEvaluationCount() int {
	return a.totalEvaluationCount
}

// TotalInspectionCount returns the number of settled inspection legs.
func (a *Actor) TotalInspectionCount() int {
	return a.totalInspectionCount
}

// TotalDeliveryCount returns the number of settled delivery legs.
func (a *Actor) TotalDeliveryCount() int {
	return a.totalDeliveryCount
}

// BasicEvaluationCost returns the client's default evaluation cost.
func (a *Actor) BasicEvaluationCost() kernel.Money {
	return a.basicEvaluationCost
}

// BasicInspectionCost returns the client's default inspection cost.
func (a *Actor) BasicInspectionCost() kernel.Money {
	return a.basicInspectionCost
}

// Referrer returns the id of the actor that referred this client, or nil.
func (a *Actor) Referrer() *kernel.UUID {
	return a.referrerID
}

// RecordEvaluationSettled increments the lifetime evaluation counter.
// Called exactly once per evaluation-leg settlement.
func (a *Actor) RecordEvaluationSettled() error {
	if !a.IsWorker() {
		return ErrNotAWorker
	}
	a.totalEvaluationCount++
	return nil
}

// RecordInspectionSettled increments the lifetime inspection counter.
func (a *Actor) RecordInspectionSettled() error {
	if !a.IsWorker() {
		return ErrNotAWorker
	}
	a.totalInspectionCount++
	return nil
}

// RecordDeliverySettled increments the lifetime delivery counter.
func (a *Actor) RecordDeliverySettled() error {
	if !a.IsWorker() {
		return ErrNotAWorker
	}
	a.totalDeliveryCount++
	return nil
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Actor) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	a.kind = kind
	return nil
}

func (a *Actor) setReferralRevenueRate(rate float64) error {
	if rate < minReferralRevenueRate || rate > maxReferralRevenueRate {
		return errs.NewValueIsOutOfRangeError("referral revenue rate",
			rate, minReferralRevenueRate, maxReferralRevenueRate)
	}
	a.referralRevenueRate = rate
	return nil
}

func (a *Actor) setReferrerID(referrerID *kernel.UUID) error {
	if referrerID == nil {
		return nil
	}
	if err := referrerID.Validate(); err != nil {
		return err
	}
	a.referrerID = referrerID
	return nil
}
