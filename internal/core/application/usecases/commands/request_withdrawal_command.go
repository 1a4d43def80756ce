package commands

import (
	"errors"
	"fmt"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"
	"carveyor/internal/pkg/guard"
)

var ErrRequestWithdrawalCommandIsNotConstructed = errors.New(
	"RequestWithdrawalCommand must be created via NewRequestWithdrawalCommand constructor",
)

// RequestWithdrawalCommand debits an actor's balance for a payout. The debit
// is immediate; the actual bank transfer happens out of band.
type RequestWithdrawalCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewRequestWithdrawalCommand creates a command for a withdrawal request.
func NewRequestWithdrawalCommand(actorID kernel.UUID, amount kernel.Money) (RequestWithdrawalCommand, error) {
	command := RequestWithdrawalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := actorID.Validate(); err != nil {
		return RequestWithdrawalCommand{}, err
	}
	if amount <= 0 {
		return RequestWithdrawalCommand{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("withdrawal of %d is not positive", amount))
	}

	command.actorID = actorID
	command.amount = amount
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrRequestWithdrawalCommandIsNotConstructed)
}

// ActorID returns the account holder's ID from the command.
func (c RequestWithdrawalCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Amount returns the withdrawal amount from the command.
func (c RequestWithdrawalCommand) Amount() kernel.Money {
	return c.amount
}
