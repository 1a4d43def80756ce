package queries

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLedgerQueryHandler reads a slice of an actor's ledger journal from the
// database. Rows come back in journal order, oldest first.
type GetLedgerQueryHandler struct {
	db *gorm.DB
}

// NewGetLedgerQueryHandler creates a handler for ledger journal queries.
// Requires a GORM database connection for query execution.
func NewGetLedgerQueryHandler(db *gorm.DB) GetLedgerQueryHandler {
	return GetLedgerQueryHandler{db: db}
}

// Handle executes the journal query.
func (h GetLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetLedgerQuery,
) ([]GetLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetLedgerQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			amount,
			order_id,
			role,
			balance_after,
			occurred_at
		FROM ledger_entries
		WHERE account_id = ?
			AND occurred_at >= ?
			AND occurred_at < ?
		ORDER BY seq
	`, query.ActorID().Bytes(), query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetLedgerQueryResponse
		var id uuid.UUID
		var orderID *uuid.UUID
		var kind, role int
		var amount, balanceAfter int64

		err = rows.Scan(&id, &kind, &amount, &orderID, &role, &balanceAfter, &entry.OccurredAt)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID

		if orderID != nil {
			oID, oErr := kernel.UUIDFromBytes((*orderID)[:])
			if oErr != nil {
				return nil, oErr
			}
			entry.OrderID = &oID
		}

		entry.Kind = ledger.EntryKind(kind)
		entry.Role = ledger.EscrowRole(role)
		entry.Amount = kernel.Money(amount)
		entry.BalanceAfter = kernel.Money(balanceAfter)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
