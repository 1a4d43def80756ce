package commands

import (
	"context"
	"time"
)

// RequestWithdrawalCommandHandler debits an actor's ledger account for a
// payout. The account rejects the debit when the balance cannot cover it.
type RequestWithdrawalCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewRequestWithdrawalCommandHandler creates a handler for withdrawal requests.
func NewRequestWithdrawalCommandHandler(uowFactory LedgerUoWFactory) RequestWithdrawalCommandHandler {
	return RequestWithdrawalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the withdrawal request command.
func (h RequestWithdrawalCommandHandler) Handle(ctx context.Context, cmd RequestWithdrawalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	account, err := uow.LedgerRepository().GetAccountForUpdate(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	if _, err = account.Withdraw(cmd.Amount(), time.Now()); err != nil {
		return err
	}

	if err = uow.LedgerRepository().Save(ctx, account); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
