package order

import (
	"errors"
	"fmt"
)

// ErrInvalidOrderStatus is returned when an event is applied to an order whose
// current status does not allow it. Terminal statuses (Cancelled, Done) reject
// every event.
var ErrInvalidOrderStatus = errors.New("invalid order status")

// Status represents the lifecycle state of an order.
//
// The full lifecycle (evaluation/inspection kinds):
//
//	WaitingWorker ──> WaitingWorkStart ──> Evaluating ──> EvaluationDone
//	                                           │               │
//	                                           │(inspection)   │(purchase decision)
//	                                           v               v
//	              WaitingDeliverer ──> WaitingDeliveryStart ──> Delivering ──> DeliveryDone ──> Done
//	                     ^                    │ (handover)
//	                     └────────────────────┘
//
// DeliveryOnly orders start at WaitingDeliverer. Cancellation is possible from
// any pre-work waiting status. Cancelled and Done are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// WaitingWorker: waiting for an evaluator/inspector to claim the order.
	WaitingWorker

	// WaitingWorkStart: a worker is assigned but has not started yet.
	WaitingWorkStart

	// Evaluating: the evaluation or inspection is in progress.
	Evaluating

	// EvaluationDone: evaluation finished, awaiting the client's purchase decision.
	EvaluationDone

	// WaitingDeliverer: waiting for a driver to claim the delivery leg.
	WaitingDeliverer

	// WaitingDeliveryStart: a deliverer is assigned but has not departed yet.
	WaitingDeliveryStart

	// Delivering: the vehicle is on its way to the destination.
	Delivering

	// DeliveryDone: the vehicle arrived, awaiting the client's receipt confirmation.
	DeliveryDone

	// Cancelled: the order was cancelled before work started. Terminal.
	Cancelled

	// Done: the order completed and was settled. Terminal.
	Done
)

// Event is an input to the order state machine. Events that depend on order
// kind or flags come in explicit variants so the transition table stays total:
// the aggregate picks the variant, the table decides legality.
type Event int

const (
	// EventAssignWorker assigns an evaluator/inspector to a waiting order.
	EventAssignWorker Event = iota + 1
	// EventAssignDeliverer assigns a driver to a waiting delivery leg.
	EventAssignDeliverer
	// EventStartWork begins the evaluation/inspection.
	EventStartWork
	// EventFinishEvaluation completes an evaluation; the client decides next.
	EventFinishEvaluation
	// EventFinishInspection completes an inspection; delivery follows directly.
	EventFinishInspection
	// EventAcceptPurchase is the client's decision to purchase and deliver.
	EventAcceptPurchase
	// EventDeclinePurchase is the client's decision not to purchase; the order
	// completes with only the evaluation leg settled.
	EventDeclinePurchase
	// EventHandoverDelivery releases the delivery leg to a separate driver.
	EventHandoverDelivery
	// EventDepart starts the delivery drive.
	EventDepart
	// EventArrive ends the drive, awaiting client confirmation.
	EventArrive
	// EventArriveAndComplete ends the drive on orders without a client
	// confirmation step.
	EventArriveAndComplete
	// EventConfirmReceipt is the client's confirmation of the delivered vehicle.
	EventConfirmReceipt
	// EventCancel cancels a not-yet-started order.
	EventCancel
)

// statusStrings maps every status to its persisted/displayed name.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "Unknown",
		WaitingWorker:        "WaitingWorker",
		WaitingWorkStart:     "WaitingWorkStart",
		Evaluating:           "Evaluating",
		EvaluationDone:       "EvaluationDone",
		WaitingDeliverer:     "WaitingDeliverer",
		WaitingDeliveryStart: "WaitingDeliveryStart",
		Delivering:           "Delivering",
		DeliveryDone:         "DeliveryDone",
		Cancelled:            "Cancelled",
		Done:                 "Done",
	}
}

// eventStrings maps every event to its name for error messages.
func eventStrings() map[Event]string {
	return map[Event]string{
		EventAssignWorker:      "AssignWorker",
		EventAssignDeliverer:   "AssignDeliverer",
		EventStartWork:         "StartWork",
		EventFinishEvaluation:  "FinishEvaluation",
		EventFinishInspection:  "FinishInspection",
		EventAcceptPurchase:    "AcceptPurchase",
		EventDeclinePurchase:   "DeclinePurchase",
		EventHandoverDelivery:  "HandoverDelivery",
		EventDepart:            "Depart",
		EventArrive:            "Arrive",
		EventArriveAndComplete: "ArriveAndComplete",
		EventConfirmReceipt:    "ConfirmReceipt",
		EventCancel:            "Cancel",
	}
}

// transitions is the single source of truth for legal lifecycle moves.
// An absent (status, event) pair is illegal; terminal statuses have no entries.
func transitions() map[Status]map[Event]Status {
	return map[Status]map[Event]Status{
		WaitingWorker: {
			EventAssignWorker: WaitingWorkStart,
			EventCancel:       Cancelled,
		},
		WaitingWorkStart: {
			EventStartWork: Evaluating,
			EventCancel:    Cancelled,
		},
		Evaluating: {
			EventFinishEvaluation: EvaluationDone,
			EventFinishInspection: WaitingDeliveryStart,
		},
		EvaluationDone: {
			EventAcceptPurchase:  WaitingDeliveryStart,
			EventDeclinePurchase: Done,
		},
		WaitingDeliverer: {
			EventAssignDeliverer: WaitingDeliveryStart,
			EventCancel:          Cancelled,
		},
		WaitingDeliveryStart: {
			EventHandoverDelivery: WaitingDeliverer,
			EventDepart:           Delivering,
			EventCancel:           Cancelled,
		},
		Delivering: {
			EventArrive:            DeliveryDone,
			EventArriveAndComplete: Done,
		},
		DeliveryDone: {
			EventConfirmReceipt: Done,
		},
	}
}

// String returns the persisted/displayed name of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// String returns the event's name for error messages and notifications.
func (e Event) String() string {
	if str, ok := eventStrings()[e]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s == Unknown {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidOrderStatus, s)
	}
	if _, ok := statusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidOrderStatus, s)
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Done
}

// IsWaitingAssignment reports whether the order is waiting for an actor to
// claim it.
func (s Status) IsWaitingAssignment() bool {
	return s == WaitingWorker || s == WaitingDeliverer
}

// Next returns the status reached by applying event, or ErrInvalidOrderStatus
// when the transition is not in the table.
func (s Status) Next(event Event) (Status, error) {
	if next, ok := transitions()[s][event]; ok {
		return next, nil
	}
	return Unknown, fmt.Errorf("%w: cannot apply %s in status %s", ErrInvalidOrderStatus, event, s)
}

// CanApply reports whether event is legal in the current status.
func (s Status) CanApply(event Event) bool {
	_, ok := transitions()[s][event]
	return ok
}
