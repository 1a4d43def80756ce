package commands

import (
	"errors"
	"fmt"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
	"carveyor/internal/pkg/guard"
)

var ErrDepositCommandIsNotConstructed = errors.New(
	"DepositCommand must be created via NewDepositCommand constructor",
)

// DepositCommand credits a confirmed top-up to an actor's balance.
type DepositCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewDepositCommand creates a command for a balance deposit.
func NewDepositCommand(actorID kernel.UUID, amount kernel.Money) (DepositCommand, error) {
	command := DepositCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := actorID.Validate(); err != nil {
		return DepositCommand{}, err
	}
	if amount <= 0 {
		return DepositCommand{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("deposit of %d is not positive", amount))
	}

	command.actorID = actorID
	command.amount = amount
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DepositCommand) Validate() error {
	return c.guard.Validate(ErrDepositCommandIsNotConstructed)
}

// ActorID returns the account holder's ID from the command.
func (c DepositCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Amount returns the deposit amount from the command.
func (c DepositCommand) Amount() kernel.Money {
	return c.amount
}
