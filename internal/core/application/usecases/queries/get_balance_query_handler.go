package queries

import (
	"context"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GetBalanceQueryHandler reads an actor's balance snapshot from the ledger
// journal. The balance is the newest entry's running balance; actors without
// entries report zero.
type GetBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetBalanceQueryHandler creates a handler for balance queries.
// Requires a GORM database connection for query execution.
func NewGetBalanceQueryHandler(db *gorm.DB) GetBalanceQueryHandler {
	return GetBalanceQueryHandler{db: db}
}

// Handle executes the balance query.
func (h GetBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetBalanceQuery,
) (GetBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	response := GetBalanceQueryResponse{ActorID: query.ActorID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE((
				SELECT balance_after
				FROM ledger_entries
				WHERE account_id = ?
				ORDER BY seq DESC
				LIMIT 1
			), 0) AS balance,
			COALESCE((
				SELECT SUM(amount)
				FROM ledger_entries
				WHERE account_id = ?
					AND kind = ?
					AND NOT is_refunded
					AND NOT is_consumed
			), 0) AS held_in_escrow
	`, query.ActorID().Bytes(), query.ActorID().Bytes(), int(ledger.EntryFeeEscrow)).Row()

	var balance, held int64
	if err := row.Scan(&balance, &held); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	response.Balance = kernel.Money(balance)
	response.HeldInEscrow = kernel.Money(held)
	return response, nil
}
