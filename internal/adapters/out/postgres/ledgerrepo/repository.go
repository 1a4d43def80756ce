package ledgerrepo

import (
	"context"
	"errors"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// GormLedgerRepository implements LedgerRepository using GORM. Accounts are
// derived from the journal: the balance is the newest entry's balance_after,
// so unknown actors load as empty accounts without an insert.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetAccount loads the actor's account with its balance and open escrows.
func (r *GormLedgerRepository) GetAccount(ctx context.Context, actorID kernel.UUID) (*ledger.Account, error) {
	return r.getAccount(ctx, actorID, false)
}

// GetAccountForUpdate loads the account and serializes the actor's ledger
// writers for the duration of the surrounding transaction.
func (r *GormLedgerRepository) GetAccountForUpdate(ctx context.Context, actorID kernel.UUID) (*ledger.Account, error) {
	return r.getAccount(ctx, actorID, true)
}

func (r *GormLedgerRepository) getAccount(ctx context.Context, actorID kernel.UUID, forUpdate bool) (*ledger.Account, error) {
	if err := actorID.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		// The journal is append-only, so a FOR UPDATE on the newest entry
		// cannot serialize concurrent writers: a blocked transaction resumes
		// on its original snapshot and reads a stale balance, because the
		// winner's inserts never touched the locked row. A transaction-scoped
		// advisory lock keyed on the actor blocks the loser before it reads,
		// so it sees the winner's committed entries.
		err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtextextended(?, 0))",
			actorID.String(),
		).Error
		if err != nil {
			return nil, err
		}
	}

	var last []EntryDTO
	err := tx.
		Where("account_id = ?", actorID.Bytes()).
		Order("seq DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return nil, err
	}

	if len(last) == 0 {
		account, newErr := ledger.NewAccount(actorID)
		if newErr != nil {
			return nil, newErr
		}
		r.tracker.TrackAggregate(actorID, account)
		return account, nil
	}

	var escrowDTOs []EntryDTO
	err = tx.
		Where("account_id = ? AND kind = ? AND NOT is_refunded AND NOT is_consumed",
			actorID.Bytes(), int(ledger.EntryFeeEscrow)).
		Order("seq").
		Find(&escrowDTOs).Error
	if err != nil {
		return nil, err
	}

	openEscrows := make([]ledger.Entry, 0, len(escrowDTOs))
	for _, dto := range escrowDTOs {
		entry, mapErr := entryToDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		openEscrows = append(openEscrows, entry)
	}

	account, err := ledger.RestoreAccount(actorID, kernel.Money(last[0].BalanceAfter), openEscrows)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(actorID, account)
	return account, nil
}

// Save inserts the account's new entries and applies its escrow flag updates.
// A duplicate refund row trips the partial unique index and surfaces as
// ledger.ErrAlreadyRefunded.
func (r *GormLedgerRepository) Save(ctx context.Context, account *ledger.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	if newEntries := account.NewEntries(); len(newEntries) > 0 {
		dtos := make([]EntryDTO, 0, len(newEntries))
		for _, entry := range newEntries {
			dtos = append(dtos, entryFromDomain(account.ID(), entry))
		}
		if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
			if isUniqueViolation(err) {
				return ledger.ErrAlreadyRefunded
			}
			return err
		}
	}

	for _, entry := range account.UpdatedEntries() {
		result := r.db.WithContext(ctx).
			Model(&EntryDTO{}).
			Where("id = ?", entry.ID().Bytes()).
			Updates(map[string]any{
				"is_refunded": entry.IsRefunded(),
				"is_consumed": entry.IsConsumed(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	r.tracker.TrackAggregate(account.ID(), account)
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
