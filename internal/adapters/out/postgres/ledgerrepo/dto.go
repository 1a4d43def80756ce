// Package ledgerrepo provides data transfer objects and mapping functions for
// ledger persistence. The ledger is a single append-only journal table; an
// account is derived state, reconstructed from the actor's entries on load.
package ledgerrepo

import (
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO represents one row of the ledger journal. The partial unique index
// on refund rows enforces at most one refund per escrow even under concurrent
// cancellations. The `kind = 4` literal in its predicate is
// ledger.EntryFeeRefund, whose value is pinned in the domain package.
type EntryDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Seq orders the journal; the newest row's balance_after is the balance.
	Seq          int64      `gorm:"autoIncrement;uniqueIndex"`
	AccountID    uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_refund_once,unique,where:kind = 4"`
	Kind         int        `gorm:"not null"`
	Amount       int64      `gorm:"type:bigint;not null"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index;index:idx_refund_once,unique,where:kind = 4"`
	Role         int        `gorm:"index:idx_refund_once,unique,where:kind = 4"`
	BalanceAfter int64      `gorm:"type:bigint;not null"`
	IsRefunded   bool
	IsConsumed   bool
	OccurredAt   time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// entryFromDomain converts a ledger entry to its database representation.
func entryFromDomain(accountID kernel.UUID, entry ledger.Entry) EntryDTO {
	var orderID *uuid.UUID
	if id := entry.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return EntryDTO{
		ID:           entry.ID().Bytes(),
		AccountID:    accountID.Bytes(),
		Kind:         int(entry.Kind()),
		Amount:       entry.Amount().Int64(),
		OrderID:      orderID,
		Role:         int(entry.Role()),
		BalanceAfter: entry.BalanceAfter().Int64(),
		IsRefunded:   entry.IsRefunded(),
		IsConsumed:   entry.IsConsumed(),
		OccurredAt:   entry.OccurredAt(),
	}
}

// entryToDomain converts a database DTO to a ledger entry.
func entryToDomain(dto EntryDTO) (ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ledger.Entry{}, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, oErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if oErr != nil {
			return ledger.Entry{}, oErr
		}
		orderID = &oID
	}

	return ledger.RestoreEntry(ledger.EntryRestoreParams{
		ID:           id,
		Kind:         ledger.EntryKind(dto.Kind),
		Amount:       kernel.Money(dto.Amount),
		OrderID:      orderID,
		Role:         ledger.EscrowRole(dto.Role),
		BalanceAfter: kernel.Money(dto.BalanceAfter),
		IsRefunded:   dto.IsRefunded,
		IsConsumed:   dto.IsConsumed,
		OccurredAt:   dto.OccurredAt,
	})
}
