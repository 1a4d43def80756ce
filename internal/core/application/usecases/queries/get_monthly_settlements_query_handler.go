package queries

import (
	"context"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMonthlySettlementsQueryHandler builds an actor's monthly settlement
// statement from the settlement tables. The month window is computed in UTC.
type GetMonthlySettlementsQueryHandler struct {
	db *gorm.DB
}

// NewGetMonthlySettlementsQueryHandler creates a handler for monthly statement
// queries. Requires a GORM database connection for query execution.
func NewGetMonthlySettlementsQueryHandler(db *gorm.DB) GetMonthlySettlementsQueryHandler {
	return GetMonthlySettlementsQueryHandler{db: db}
}

// Handle executes the statement query.
func (h GetMonthlySettlementsQueryHandler) Handle(
	ctx context.Context,
	query GetMonthlySettlementsQuery,
) (GetMonthlySettlementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMonthlySettlementsQueryResponse{}, err
	}

	from := time.Date(query.Year(), query.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	response := GetMonthlySettlementsQueryResponse{
		ActorID:     query.ActorID(),
		Year:        query.Year(),
		Month:       query.Month(),
		Settlements: make([]MonthlySettlementRow, 0),
		Referrals:   make([]MonthlyReferralRow, 0),
	}

	if err := h.loadSettlements(ctx, &response, query, from, to); err != nil {
		return GetMonthlySettlementsQueryResponse{}, err
	}
	if err := h.loadReferrals(ctx, &response, query, from, to); err != nil {
		return GetMonthlySettlementsQueryResponse{}, err
	}

	for _, row := range response.Settlements {
		response.TotalRevenue += row.Revenue
		response.TotalWithheld += row.WithholdingTax + row.InsuranceWithholding
		response.TotalNet += row.NetRevenue
	}
	for _, row := range response.Referrals {
		response.TotalRevenue += row.Amount
		response.TotalWithheld += row.WithholdingTax
		response.TotalNet += row.NetAmount
	}

	return response, nil
}

func (h GetMonthlySettlementsQueryHandler) loadSettlements(
	ctx context.Context,
	response *GetMonthlySettlementsQueryResponse,
	query GetMonthlySettlementsQuery,
	from, to time.Time,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			leg,
			revenue,
			withholding_tax,
			insurance_withholding,
			is_onsite_payment,
			settled_at
		FROM settlements
		WHERE actor_id = ?
			AND settled_at >= ?
			AND settled_at < ?
		ORDER BY settled_at, order_id
	`, query.ActorID().Bytes(), from, to).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row MonthlySettlementRow
		var orderID uuid.UUID
		var leg int
		var revenue, tax, insurance int64

		err = rows.Scan(&orderID, &leg, &revenue, &tax, &insurance,
			&row.IsOnsitePayment, &row.SettledAt)
		if err != nil {
			return err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return idErr
		}
		row.OrderID = id
		row.Leg = settlement.Leg(leg)
		row.Revenue = kernel.Money(revenue)
		row.WithholdingTax = kernel.Money(tax)
		row.InsuranceWithholding = kernel.Money(insurance)
		row.NetRevenue = row.Revenue - row.WithholdingTax - row.InsuranceWithholding
		response.Settlements = append(response.Settlements, row)
	}

	return rows.Err()
}

func (h GetMonthlySettlementsQueryHandler) loadReferrals(
	ctx context.Context,
	response *GetMonthlySettlementsQueryResponse,
	query GetMonthlySettlementsQuery,
	from, to time.Time,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			referred_actor_id,
			amount,
			withholding_tax,
			settled_at
		FROM referral_settlements
		WHERE referrer_id = ?
			AND settled_at >= ?
			AND settled_at < ?
		ORDER BY settled_at, order_id
	`, query.ActorID().Bytes(), from, to).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row MonthlyReferralRow
		var orderID, referredID uuid.UUID
		var amount, tax int64

		err = rows.Scan(&orderID, &referredID, &amount, &tax, &row.SettledAt)
		if err != nil {
			return err
		}

		oID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return idErr
		}
		rID, idErr := kernel.UUIDFromBytes(referredID[:])
		if idErr != nil {
			return idErr
		}
		row.OrderID = oID
		row.ReferredActorID = rID
		row.Amount = kernel.Money(amount)
		row.WithholdingTax = kernel.Money(tax)
		row.NetAmount = row.Amount - row.WithholdingTax
		response.Referrals = append(response.Referrals, row)
	}

	return rows.Err()
}
