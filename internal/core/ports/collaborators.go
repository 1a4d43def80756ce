package ports

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
)

// DeliveryCostResult is what the external cost service reports for a route.
type DeliveryCostResult struct {
	// Cost is the delivering cost for the route in currency minor units.
	Cost kernel.Money
	// DistanceKm is the road distance between source and destination.
	DistanceKm float64
}

// DeliveryCostLookup resolves the delivering cost of a route through the
// external cost service. Called outside ledger critical sections; a lookup
// failure degrades the order to zero cost and flags it for manual follow-up.
type DeliveryCostLookup interface {
	Lookup(ctx context.Context, source, destination kernel.Address) (DeliveryCostResult, error)
}

// NotificationEvent names a lifecycle moment worth telling someone about.
type NotificationEvent string

const (
	NotificationOrderCreated     NotificationEvent = "order_created"
	NotificationOrderAssigned    NotificationEvent = "order_assigned"
	NotificationWorkStarted      NotificationEvent = "work_started"
	NotificationEvaluationDone   NotificationEvent = "evaluation_done"
	NotificationPurchaseDecided  NotificationEvent = "purchase_decided"
	NotificationDeliveryHandover NotificationEvent = "delivery_handover"
	NotificationDeliveryStarted  NotificationEvent = "delivery_started"
	NotificationDeliveryArrived  NotificationEvent = "delivery_arrived"
	NotificationOrderCompleted   NotificationEvent = "order_completed"
	NotificationOrderCancelled   NotificationEvent = "order_cancelled"

	// NotificationAssignmentReminder is sent periodically for orders still
	// waiting for a worker or deliverer to claim them.
	NotificationAssignmentReminder NotificationEvent = "assignment_reminder"
)

// Notification is one outbound message about an order event.
type Notification struct {
	Event      NotificationEvent
	OrderID    kernel.UUID
	Recipients []kernel.UUID
	// HookURL, when set, additionally posts the event to the external
	// marketplace that placed the order.
	HookURL string
	Payload map[string]any
}

// Notifier dispatches notifications after a transaction commits. Delivery is
// best-effort: implementations log failures and never propagate them into
// the calling operation.
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}
