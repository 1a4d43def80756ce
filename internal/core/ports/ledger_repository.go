package ports

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for ledger accounts and
// their entry journals. Accounts are created lazily: loading an unknown actor
// id yields an empty account.
type LedgerRepository interface {
	// GetAccount loads the actor's account with its balance and open escrows.
	GetAccount(ctx context.Context, actorID kernel.UUID) (*ledger.Account, error)

	// GetAccountForUpdate loads the account like GetAccount and locks the
	// actor's ledger rows for the duration of the surrounding transaction,
	// serializing concurrent balance movements per actor.
	GetAccountForUpdate(ctx context.Context, actorID kernel.UUID) (*ledger.Account, error)

	// Save persists the account's new entries and escrow flag updates.
	// Returns ledger.ErrAlreadyRefunded when a refund for the same escrow was
	// already recorded.
	Save(ctx context.Context, account *ledger.Account) error
}
