package http

import (
	"fmt"

	"carveyor/internal/core/application/usecases/queries"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"
)

// Request bodies. Structural checks run through the validator; domain rules
// are enforced by the command constructors.

type createOrderRequest struct {
	ClientID                string           `json:"client_id" validate:"required,uuid4"`
	Kind                    string           `json:"kind" validate:"required"`
	Source                  addressRequest   `json:"source" validate:"required"`
	Destination             addressRequest   `json:"destination" validate:"required"`
	Stopovers               []addressRequest `json:"stopovers" validate:"omitempty,dive"`
	EvaluationCost          int64            `json:"evaluation_cost" validate:"gte=0"`
	InspectionCost          int64            `json:"inspection_cost" validate:"gte=0"`
	DeliveringCost          int64            `json:"delivering_cost" validate:"gte=0"`
	AdditionalSuggestedCost int64            `json:"additional_suggested_cost" validate:"gte=0"`
	IsOnsitePayment         bool             `json:"is_onsite_payment"`
	SkipReceiptConfirmation bool             `json:"skip_receipt_confirmation"`
	HookURL                 string           `json:"hook_url" validate:"omitempty,url"`
}

type addressRequest struct {
	Road   string `json:"road" validate:"required"`
	Detail string `json:"detail"`
}

type actorActionRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid4"`
}

type clientActionRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid4"`
}

type purchaseDecisionRequest struct {
	ClientID   string `json:"client_id" validate:"required,uuid4"`
	Purchasing *bool  `json:"purchasing" validate:"required"`
}

type mileageRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid4"`
	Mileage int64  `json:"mileage" validate:"gte=0"`
}

type adHocCostRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid4"`
	Name    string `json:"name" validate:"required"`
	Amount  int64  `json:"amount" validate:"gt=0"`
	Phase   string `json:"phase" validate:"required,oneof=Evaluation Delivery"`
}

type amountRequest struct {
	Amount int64 `json:"amount" validate:"gt=0"`
}

// Response bodies.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderCreatedResponse struct {
	OrderID string `json:"order_id"`
}

type waitingOrderResponse struct {
	ID               string  `json:"id"`
	Kind             string  `json:"kind"`
	Status           string  `json:"status"`
	SourceRoad       string  `json:"source_road"`
	DestinationRoad  string  `json:"destination_road"`
	StopoverCount    int     `json:"stopover_count"`
	DistanceKm       float64 `json:"distance_km"`
	IsCostUnresolved bool    `json:"is_cost_unresolved"`
	EvaluationCost   int64   `json:"evaluation_cost"`
	DeliveringCost   int64   `json:"delivering_cost"`
}

type balanceResponse struct {
	ActorID      string `json:"actor_id"`
	Balance      int64  `json:"balance"`
	HeldInEscrow int64  `json:"held_in_escrow"`
}

type ledgerEntryResponse struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	Amount       int64   `json:"amount"`
	OrderID      *string `json:"order_id,omitempty"`
	Role         string  `json:"role,omitempty"`
	BalanceAfter int64   `json:"balance_after"`
	OccurredAt   string  `json:"occurred_at"`
}

type settlementRowResponse struct {
	OrderID              string `json:"order_id"`
	Leg                  string `json:"leg"`
	Revenue              int64  `json:"revenue"`
	WithholdingTax       int64  `json:"withholding_tax"`
	InsuranceWithholding int64  `json:"insurance_withholding"`
	NetRevenue           int64  `json:"net_revenue"`
	IsOnsitePayment      bool   `json:"is_onsite_payment"`
	SettledAt            string `json:"settled_at"`
}

type referralRowResponse struct {
	OrderID         string `json:"order_id"`
	ReferredActorID string `json:"referred_actor_id"`
	Amount          int64  `json:"amount"`
	WithholdingTax  int64  `json:"withholding_tax"`
	NetAmount       int64  `json:"net_amount"`
	SettledAt       string `json:"settled_at"`
}

type monthlyStatementResponse struct {
	ActorID       string                  `json:"actor_id"`
	Year          int                     `json:"year"`
	Month         int                     `json:"month"`
	Settlements   []settlementRowResponse `json:"settlements"`
	Referrals     []referralRowResponse   `json:"referrals"`
	TotalRevenue  int64                   `json:"total_revenue"`
	TotalWithheld int64                   `json:"total_withheld"`
	TotalNet      int64                   `json:"total_net"`
}

func parseOrderKind(s string) (order.Kind, error) {
	switch s {
	case order.KindEvaluationDelivery.String():
		return order.KindEvaluationDelivery, nil
	case order.KindInspectionDelivery.String():
		return order.KindInspectionDelivery, nil
	case order.KindDeliveryOnly.String():
		return order.KindDeliveryOnly, nil
	default:
		return order.KindUnknown, fmt.Errorf("unknown order kind %q", s)
	}
}

func parseWorkPhase(s string) (order.WorkPhase, error) {
	switch s {
	case order.PhaseEvaluation.String():
		return order.PhaseEvaluation, nil
	case order.PhaseDelivery.String():
		return order.PhaseDelivery, nil
	default:
		return order.PhaseUnknown, fmt.Errorf("unknown work phase %q", s)
	}
}

func (r createOrderRequest) toCosts() (order.Costs, error) {
	evaluation, err := kernel.NewMoney(r.EvaluationCost)
	if err != nil {
		return order.Costs{}, err
	}
	inspection, err := kernel.NewMoney(r.InspectionCost)
	if err != nil {
		return order.Costs{}, err
	}
	delivering, err := kernel.NewMoney(r.DeliveringCost)
	if err != nil {
		return order.Costs{}, err
	}
	additional, err := kernel.NewMoney(r.AdditionalSuggestedCost)
	if err != nil {
		return order.Costs{}, err
	}
	return order.Costs{
		Evaluation:          evaluation,
		Inspection:          inspection,
		Delivering:          delivering,
		AdditionalSuggested: additional,
	}, nil
}

func toWaitingOrderResponse(row queries.GetWaitingOrdersQueryResponse) waitingOrderResponse {
	return waitingOrderResponse{
		ID:               row.ID.String(),
		Kind:             row.Kind.String(),
		Status:           row.Status.String(),
		SourceRoad:       row.SourceRoad,
		DestinationRoad:  row.DestinationRoad,
		StopoverCount:    row.StopoverCount,
		DistanceKm:       row.DistanceKm,
		IsCostUnresolved: row.IsCostUnresolved,
		EvaluationCost:   row.EvaluationCost.Int64(),
		DeliveringCost:   row.DeliveringCost.Int64(),
	}
}
