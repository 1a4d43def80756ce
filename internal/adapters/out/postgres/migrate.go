package postgres

import (
	"carveyor/internal/adapters/out/postgres/actorrepo"
	"carveyor/internal/adapters/out/postgres/ledgerrepo"
	"carveyor/internal/adapters/out/postgres/orderrepo"
	"carveyor/internal/adapters/out/postgres/settlementrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every aggregate table,
// including the partial unique indexes the ledger and settlement tables
// rely on for idempotency.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&actorrepo.ActorDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.StopoverDTO{},
		&orderrepo.AdHocCostDTO{},
		&ledgerrepo.EntryDTO{},
		&settlementrepo.SettlementDTO{},
		&settlementrepo.ReferralSettlementDTO{},
	)
}
