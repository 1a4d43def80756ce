package queries

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWaitingOrdersQueryHandler retrieves claimable orders from the database.
// Results are sorted by order ID for consistent output.
type GetWaitingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetWaitingOrdersQueryHandler creates a handler for claimable-order queries.
// Requires a GORM database connection for query execution.
func NewGetWaitingOrdersQueryHandler(db *gorm.DB) GetWaitingOrdersQueryHandler {
	return GetWaitingOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all claimable orders.
func (h GetWaitingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetWaitingOrdersQuery,
) ([]GetWaitingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetWaitingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.kind,
			o.status,
			o.source_road,
			o.destination_road,
			(SELECT COUNT(*) FROM order_stopovers s WHERE s.order_id = o.id) AS stopover_count,
			o.distance_km,
			o.is_cost_unresolved,
			o.evaluation_cost,
			o.delivering_cost
		FROM orders o
		WHERE o.status IN (?, ?)
		ORDER BY o.id
	`, int(order.WaitingWorker), int(order.WaitingDeliverer)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetWaitingOrdersQueryResponse
		var id uuid.UUID
		var kind, status int
		var evaluationCost, deliveringCost int64

		err = rows.Scan(
			&id,
			&kind,
			&status,
			&orderResp.SourceRoad,
			&orderResp.DestinationRoad,
			&orderResp.StopoverCount,
			&orderResp.DistanceKm,
			&orderResp.IsCostUnresolved,
			&evaluationCost,
			&deliveringCost,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.Kind = order.Kind(kind)
		orderResp.Status = order.Status(status)
		orderResp.EvaluationCost = kernel.Money(evaluationCost)
		orderResp.DeliveringCost = kernel.Money(deliveringCost)
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
