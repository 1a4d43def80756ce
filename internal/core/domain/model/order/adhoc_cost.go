package order

import (
	"fmt"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
)

// WorkPhase tags an ad-hoc cost with the billable phase it was incurred in.
// Settlements are leg-scoped, so the phase decides which settlement a cost
// belongs to when the delivery leg is handed over.
type WorkPhase int

const (
	// PhaseUnknown catches uninitialized WorkPhase values.
	PhaseUnknown WorkPhase = iota

	// PhaseEvaluation covers costs incurred during evaluation or inspection.
	PhaseEvaluation

	// PhaseDelivery covers costs incurred during the delivery drive.
	PhaseDelivery
)

// String returns the human-readable name of the phase.
func (p WorkPhase) String() string {
	switch p {
	case PhaseEvaluation:
		return "Evaluation"
	case PhaseDelivery:
		return "Delivery"
	default:
		return "Unknown"
	}
}

// Validate checks if the WorkPhase value is valid.
func (p WorkPhase) Validate() error {
	if p != PhaseEvaluation && p != PhaseDelivery {
		return errs.NewValueIsInvalidErrorWithCause("work phase",
			fmt.Errorf("%d is not a valid work phase", p))
	}
	return nil
}

// AdHocCost is a named cost item added to an order while work is in progress
// (fuel, waiting time, tolls). Immutable once recorded.
type AdHocCost struct {
	name   string
	amount kernel.Money
	phase  WorkPhase
}

// NewAdHocCost creates an ad-hoc cost item.
func NewAdHocCost(name string, amount kernel.Money, phase WorkPhase) (AdHocCost, error) {
	if name == "" {
		return AdHocCost{}, errs.NewValueIsRequiredError("ad-hoc cost name")
	}
	if err := phase.Validate(); err != nil {
		return AdHocCost{}, err
	}

	return AdHocCost{
		name:   name,
		amount: amount,
		phase:  phase,
	}, nil
}

// Name returns the cost description.
func (c AdHocCost) Name() string {
	return c.name
}

// Amount returns the cost amount.
func (c AdHocCost) Amount() kernel.Money {
	return c.amount
}

// Phase returns the working phase the cost was incurred in.
func (c AdHocCost) Phase() WorkPhase {
	return c.phase
}
