package queries

import (
	"errors"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/pkg/errs"
	"carveyor/internal/pkg/guard"
)

var ErrGetMonthlySettlementsQueryIsNotConstructed = errors.New(
	"GetMonthlySettlementsQuery must be created via NewGetMonthlySettlementsQuery constructor",
)

// GetMonthlySettlementsQuery retrieves an actor's settlement statement for one
// calendar month: the leg settlements they earned plus the referral shares
// credited to them, with withholding totals for tax reporting.
type GetMonthlySettlementsQuery struct {
	actorID kernel.UUID
	year    int
	month   time.Month

	guard guard.ConstructorGuard
}

// NewGetMonthlySettlementsQuery creates a monthly statement query.
func NewGetMonthlySettlementsQuery(actorID kernel.UUID, year int, month time.Month) (GetMonthlySettlementsQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetMonthlySettlementsQuery{}, errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}
	if year < 2000 || year > 9999 {
		return GetMonthlySettlementsQuery{}, errs.NewValueIsOutOfRangeError("year", year, 2000, 9999)
	}
	if month < time.January || month > time.December {
		return GetMonthlySettlementsQuery{}, errs.NewValueIsOutOfRangeError("month", int(month), 1, 12)
	}

	return GetMonthlySettlementsQuery{
		actorID: actorID,
		year:    year,
		month:   month,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMonthlySettlementsQuery) Validate() error {
	return q.guard.Validate(ErrGetMonthlySettlementsQueryIsNotConstructed)
}

// ActorID returns the actor whose statement is requested.
func (q GetMonthlySettlementsQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Year returns the statement year.
func (q GetMonthlySettlementsQuery) Year() int {
	return q.year
}

// Month returns the statement month.
func (q GetMonthlySettlementsQuery) Month() time.Month {
	return q.month
}

// MonthlySettlementRow is one settled order leg on the statement.
type MonthlySettlementRow struct {
	OrderID              kernel.UUID
	Leg                  settlement.Leg
	Revenue              kernel.Money
	WithholdingTax       kernel.Money
	InsuranceWithholding kernel.Money
	NetRevenue           kernel.Money
	IsOnsitePayment      bool
	SettledAt            time.Time
}

// MonthlyReferralRow is one referral share on the statement.
type MonthlyReferralRow struct {
	OrderID         kernel.UUID
	ReferredActorID kernel.UUID
	Amount          kernel.Money
	WithholdingTax  kernel.Money
	NetAmount       kernel.Money
	SettledAt       time.Time
}

// GetMonthlySettlementsQueryResponse is the complete monthly statement.
// Totals cover both leg settlements and referral shares.
type GetMonthlySettlementsQueryResponse struct {
	ActorID     kernel.UUID
	Year        int
	Month       time.Month
	Settlements []MonthlySettlementRow
	Referrals   []MonthlyReferralRow

	TotalRevenue  kernel.Money
	TotalWithheld kernel.Money
	TotalNet      kernel.Money
}
