package order

import (
	"fmt"

	"carveyor/internal/pkg/errs"
)

// Kind is the service type of an order. It determines the initial lifecycle
// status and which cost fields apply.
type Kind int

const (
	// KindUnknown catches uninitialized Kind values.
	KindUnknown Kind = iota

	// KindEvaluationDelivery is a vehicle evaluation followed by delivery.
	// The client decides after the evaluation whether to purchase and proceed
	// with the delivery leg.
	KindEvaluationDelivery

	// KindInspectionDelivery is a vehicle inspection followed directly by
	// delivery; there is no purchase decision step.
	KindInspectionDelivery

	// KindDeliveryOnly is a plain delivery with no evaluation leg. Such an
	// order only ever has a deliverer, never a separate worker.
	KindDeliveryOnly
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEvaluationDelivery:
		return "EvaluationDelivery"
	case KindInspectionDelivery:
		return "InspectionDelivery"
	case KindDeliveryOnly:
		return "DeliveryOnly"
	default:
		return "Unknown"
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	switch k {
	case KindEvaluationDelivery, KindInspectionDelivery, KindDeliveryOnly:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order kind",
			fmt.Errorf("%d is not a valid order kind", k))
	}
}

// InitialStatus returns the first waiting status for the kind:
// DeliveryOnly orders wait for a deliverer, the rest wait for a worker.
func (k Kind) InitialStatus() Status {
	if k == KindDeliveryOnly {
		return WaitingDeliverer
	}
	return WaitingWorker
}

// HasEvaluationLeg reports whether the kind includes an evaluation or
// inspection leg before delivery.
func (k Kind) HasEvaluationLeg() bool {
	return k == KindEvaluationDelivery || k == KindInspectionDelivery
}
