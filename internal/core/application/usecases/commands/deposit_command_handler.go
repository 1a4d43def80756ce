package commands

import (
	"context"
	"time"
)

// DepositCommandHandler credits a top-up to an actor's ledger account.
type DepositCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewDepositCommandHandler creates a handler for balance deposits.
func NewDepositCommandHandler(uowFactory LedgerUoWFactory) DepositCommandHandler {
	return DepositCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deposit command.
func (h DepositCommandHandler) Handle(ctx context.Context, cmd DepositCommand) error {
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

	if _, err = account.Deposit(cmd.Amount(), time.Now()); err != nil {
		return err
	}

	if err = uow.LedgerRepository().Save(ctx, account); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
