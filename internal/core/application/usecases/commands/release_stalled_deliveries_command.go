package commands

import (
	"errors"

	"carveyor/internal/pkg/guard"
)

var ErrReleaseStalledDeliveriesCommandIsNotConstructed = errors.New(
	"ReleaseStalledDeliveriesCommand must be created via NewReleaseStalledDeliveriesCommand constructor",
)

// ReleaseStalledDeliveriesCommand sweeps self-deliveries whose worker kept
// the delivery leg but never departed. Each stalled order is handed over on
// the worker's behalf: the evaluation leg settles and the delivery goes back
// on the board.
type ReleaseStalledDeliveriesCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewReleaseStalledDeliveriesCommand creates a command for the sweep.
func NewReleaseStalledDeliveriesCommand() ReleaseStalledDeliveriesCommand {
	return ReleaseStalledDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStalledDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStalledDeliveriesCommandIsNotConstructed)
}
