package services

import (
	"github.com/shopspring/decimal"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
)

// stopoverFee is the flat surcharge per intermediate stop on the delivery route.
const stopoverFee = 5000

// Statutory and commercial rates. All derived amounts are truncated toward
// zero to whole currency units.
var (
	vatRate            = decimal.NewFromFloat(0.10)
	assignmentFeeRate  = decimal.NewFromFloat(0.20)
	withholdingTaxRate = decimal.NewFromFloat(0.033)
	insuranceRate      = decimal.NewFromFloat(0.016)
	oneHundred         = decimal.NewFromInt(100)
)

// FeeCalculator is a pure domain service for all order money arithmetic:
// direct cost, VAT, final cost, the assignment fee escrowed when an actor
// claims an order, and the statutory withholdings applied at settlement.
//
// Business rules:
//   - direct cost = service cost (by kind) + delivering cost
//     + stopovers x 5000 + client's additional suggested cost
//   - vat = floor(direct x 0.10); ad-hoc costs carry no VAT
//   - assignment fee = floor((base + vat(base)) x 0.20), computed from the
//     fields known at assignment time, so ad-hoc costs never enter the fee
//   - a deliverer claiming a DeliveryOnly or handed-over order is charged on
//     the delivery portion only; the evaluation cost belongs to the first leg
type FeeCalculator struct{}

// NewFeeCalculator creates a new FeeCalculator instance.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// DirectCost returns the order's full direct cost: the kind's service cost
// plus the delivering cost, stopover surcharges, and the client's additional
// suggested cost.
func (c FeeCalculator) DirectCost(o *order.Order) kernel.Money {
	return c.serviceCost(o) + c.deliveryPortion(o)
}

// VAT returns floor(direct x 0.10).
func (c FeeCalculator) VAT(direct kernel.Money) kernel.Money {
	return truncMul(direct, vatRate)
}

// AdHocTotal returns the sum of all recorded ad-hoc cost items.
func (c FeeCalculator) AdHocTotal(o *order.Order) kernel.Money {
	var total kernel.Money
	for _, cost := range o.AdHocCosts() {
		total = total.Add(cost.Amount())
	}
	return total
}

// FinalCost returns what the client owes: direct cost + VAT + ad-hoc costs.
func (c FeeCalculator) FinalCost(o *order.Order) kernel.Money {
	direct := c.DirectCost(o)
	return direct + c.VAT(direct) + c.AdHocTotal(o)
}

// AssignmentFee returns the fee escrowed when an actor claims the order.
// For a deliverer on a DeliveryOnly or handed-over order the fee base is the
// delivery portion only; otherwise it is the full direct cost.
func (c FeeCalculator) AssignmentFee(o *order.Order, asDeliverer bool) kernel.Money {
	base := c.DirectCost(o)
	if asDeliverer && c.deliveryLegStandsAlone(o) {
		base = c.deliveryPortion(o)
	}
	return truncMul(base+c.VAT(base), assignmentFeeRate)
}

// LegDirectCost returns the direct-cost snapshot of one settlement leg:
// the evaluation leg covers the service cost, the delivery leg covers the
// delivery portion. When the order never split (self-delivery, DeliveryOnly),
// the delivery leg settles the whole order and carries the full direct cost.
func (c FeeCalculator) LegDirectCost(o *order.Order, leg settlement.Leg) kernel.Money {
	switch {
	case leg == settlement.LegEvaluation:
		return c.serviceCost(o)
	case o.IsDeliveryTransferred():
		return c.deliveryPortion(o)
	default:
		return c.DirectCost(o)
	}
}

// LegAdHocTotal returns the ad-hoc cost total belonging to one settlement leg.
// An unsplit delivery-leg settlement covers the costs of both phases.
func (c FeeCalculator) LegAdHocTotal(o *order.Order, leg settlement.Leg) kernel.Money {
	var costs []order.AdHocCost
	switch {
	case leg == settlement.LegEvaluation:
		costs = o.AdHocCostsForPhase(order.PhaseEvaluation)
	case o.IsDeliveryTransferred():
		costs = o.AdHocCostsForPhase(order.PhaseDelivery)
	default:
		costs = o.AdHocCosts()
	}

	var total kernel.Money
	for _, cost := range costs {
		total = total.Add(cost.Amount())
	}
	return total
}

// LegRevenue returns the payee's gross revenue for a settled leg: the leg's
// direct cost + its VAT + its ad-hoc costs, minus the escrowed fee recovered
// from the payee.
func (c FeeCalculator) LegRevenue(o *order.Order, leg settlement.Leg, fee kernel.Money) kernel.Money {
	base := c.LegDirectCost(o, leg)
	return base + c.VAT(base) + c.LegAdHocTotal(o, leg) - fee
}

// WithholdingTax returns the income tax withheld from settlement revenue.
func (c FeeCalculator) WithholdingTax(revenue kernel.Money) kernel.Money {
	return truncMul(revenue, withholdingTaxRate)
}

// InsuranceWithholding returns the industrial-accident insurance contribution
// withheld from settlement revenue.
func (c FeeCalculator) InsuranceWithholding(revenue kernel.Money) kernel.Money {
	return truncMul(revenue, insuranceRate)
}

// ReferralShare returns the referrer's gross share of an assignment fee at
// the given percentage rate.
func (c FeeCalculator) ReferralShare(fee kernel.Money, ratePercent float64) kernel.Money {
	share := decimal.NewFromInt(fee.Int64()).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(oneHundred)
	return kernel.Money(share.IntPart())
}

// serviceCost returns the evaluation or inspection cost applicable to the
// order's kind; zero for DeliveryOnly.
func (c FeeCalculator) serviceCost(o *order.Order) kernel.Money {
	switch o.Kind() {
	case order.KindEvaluationDelivery:
		return o.Costs().Evaluation
	case order.KindInspectionDelivery:
		return o.Costs().Inspection
	default:
		return 0
	}
}

// deliveryPortion returns the delivery-only part of the direct cost.
func (c FeeCalculator) deliveryPortion(o *order.Order) kernel.Money {
	return o.Costs().Delivering +
		kernel.Money(o.StopoverCount()*stopoverFee) +
		o.Costs().AdditionalSuggested
}

// deliveryLegStandsAlone reports whether the delivery leg is claimed and
// settled separately from any evaluation work.
func (c FeeCalculator) deliveryLegStandsAlone(o *order.Order) bool {
	return o.Kind() == order.KindDeliveryOnly || o.IsDeliveryTransferred()
}

// truncMul multiplies an amount by a rate and truncates toward zero.
func truncMul(amount kernel.Money, rate decimal.Decimal) kernel.Money {
	return kernel.Money(decimal.NewFromInt(amount.Int64()).Mul(rate).IntPart())
}
