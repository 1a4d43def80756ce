package ports

import (
	"context"

	"carveyor/internal/core/domain/model/settlement"
)

// SettlementRepository defines the persistence contract for settlement and
// referral settlement records.
type SettlementRepository interface {
	// Add persists a new settlement record. Returns
	// settlement.ErrDuplicateSettlement when the order leg already settled.
	Add(ctx context.Context, record *settlement.Settlement) error

	// AddReferral persists a new referral settlement record.
	AddReferral(ctx context.Context, record *settlement.ReferralSettlement) error
}
