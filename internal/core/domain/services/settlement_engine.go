package services

import (
	"time"

	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
)

// SettlementResult carries everything one leg settlement produced. The
// referral fields are nil when the order's client has no worker referrer.
type SettlementResult struct {
	Settlement         *settlement.Settlement
	ReferralSettlement *settlement.ReferralSettlement
}

// SettlementEngine settles one order leg: it recovers the payee's escrowed
// fee, computes the gross revenue and statutory withholdings, credits the net
// revenue to the payee's ledger, increments the payee's lifetime counters,
// and pays out the referral share when the client was brought in by a worker.
//
// Business rules:
//   - each (order, leg) pair settles exactly once
//   - the escrowed fee is consumed, never refunded, once its leg settles
//   - on-site payments keep the settlement record, counters, and referral
//     share, but move no revenue through the ledger
//   - withholdings: income tax floor(revenue x 0.033), insurance
//     floor(revenue x 0.016), both zero for on-site payments
//   - a leg grossing less than its escrowed fee settles at zero revenue;
//     the payee never owes the difference
type SettlementEngine struct {
	calc FeeCalculator
}

// NewSettlementEngine creates a new SettlementEngine instance.
func NewSettlementEngine(calc FeeCalculator) SettlementEngine {
	return SettlementEngine{calc: calc}
}

// ReferralParty bundles the referrer's actor and ledger account. Pass nil
// when the client has no referrer or the referrer is not a worker.
type ReferralParty struct {
	Referrer *actor.Actor
	Account  *ledger.Account
}

// SettleLeg settles the given leg for the payee within the caller's unit of
// work. All aggregates are mutated in memory; the caller persists them
// together.
func (e SettlementEngine) SettleLeg(
	o *order.Order,
	leg settlement.Leg,
	payee *actor.Actor,
	payeeAccount *ledger.Account,
	referral *ReferralParty,
	now time.Time,
) (SettlementResult, error) {
	if err := o.Validate(); err != nil {
		return SettlementResult{}, err
	}
	if err := payee.Validate(); err != nil {
		return SettlementResult{}, err
	}
	if err := payeeAccount.Validate(); err != nil {
		return SettlementResult{}, err
	}

	escrow, err := payeeAccount.ConsumeEscrow(o.ID(), e.escrowRole(o, leg))
	if err != nil {
		return SettlementResult{}, err
	}
	fee := escrow.Amount()

	revenue := e.calc.LegRevenue(o, leg, fee)
	if revenue < 0 {
		// The assignment fee was escrowed against the full order total, so
		// a small leg can gross less than the fee it recovers. The escrow is
		// still consumed, but nothing is charged back to the payee.
		revenue = 0
	}

	var withholdingTax, insurance kernel.Money
	if !o.IsOnsitePayment() {
		withholdingTax = e.calc.WithholdingTax(revenue)
		insurance = e.calc.InsuranceWithholding(revenue)
	}

	record, err := settlement.NewSettlement(
		o.ID(), payee.ID(), leg,
		revenue, withholdingTax, insurance,
		o.IsOnsitePayment(), now,
	)
	if err != nil {
		return SettlementResult{}, err
	}

	if !o.IsOnsitePayment() {
		net := revenue - withholdingTax - insurance
		if _, err = payeeAccount.CreditRevenue(net, o.ID(), now); err != nil {
			return SettlementResult{}, err
		}
	}

	if err = e.recordCounters(o, leg, payee); err != nil {
		return SettlementResult{}, err
	}

	result := SettlementResult{Settlement: record}
	if referral != nil && referral.Referrer != nil {
		result.ReferralSettlement, err = e.settleReferral(o, payee.ID(), fee, referral, now)
		if err != nil {
			return SettlementResult{}, err
		}
	}
	return result, nil
}

// escrowRole returns which escrow the settled leg consumes. The delivery leg
// of an unsplit order was escrowed at the worker assignment.
func (e SettlementEngine) escrowRole(o *order.Order, leg settlement.Leg) ledger.EscrowRole {
	if leg == settlement.LegEvaluation {
		return ledger.RoleWorker
	}
	if o.Kind() == order.KindDeliveryOnly || o.IsDeliveryTransferred() {
		return ledger.RoleDeliverer
	}
	return ledger.RoleWorker
}

// recordCounters increments the payee's lifetime counters. An unsplit
// delivery-leg settlement covers the evaluation work too.
func (e SettlementEngine) recordCounters(o *order.Order, leg settlement.Leg, payee *actor.Actor) error {
	if leg == settlement.LegEvaluation {
		return e.recordServiceCounter(o, payee)
	}

	if err := payee.RecordDeliverySettled(); err != nil {
		return err
	}
	if !o.IsDeliveryTransferred() && o.Kind().HasEvaluationLeg() {
		return e.recordServiceCounter(o, payee)
	}
	return nil
}

func (e SettlementEngine) recordServiceCounter(o *order.Order, payee *actor.Actor) error {
	if o.Kind() == order.KindInspectionDelivery {
		return payee.RecordInspectionSettled()
	}
	return payee.RecordEvaluationSettled()
}

// settleReferral pays the referrer's share of the recovered fee.
func (e SettlementEngine) settleReferral(
	o *order.Order,
	payeeID kernel.UUID,
	fee kernel.Money,
	referral *ReferralParty,
	now time.Time,
) (*settlement.ReferralSettlement, error) {
	if err := referral.Referrer.Validate(); err != nil {
		return nil, err
	}
	if err := referral.Account.Validate(); err != nil {
		return nil, err
	}
	if !referral.Referrer.IsWorker() {
		return nil, actor.ErrNotAWorker
	}

	share := e.calc.ReferralShare(fee, referral.Referrer.ReferralRevenueRate())
	tax := e.calc.WithholdingTax(share)

	record, err := settlement.NewReferralSettlement(
		o.ID(), referral.Referrer.ID(), payeeID, share, tax, now,
	)
	if err != nil {
		return nil, err
	}

	if _, err = referral.Account.CreditReferralRevenue(share-tax, o.ID(), now); err != nil {
		return nil, err
	}
	return record, nil
}
