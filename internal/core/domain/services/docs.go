// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the marketplace core. It implements the
// money rules that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - FeeCalculator: pure cost, VAT, and assignment-fee arithmetic
//   - EscrowCoordinator: reserving and releasing assignment-fee escrows
//   - SettlementEngine: settling order legs, withholdings, and referral shares
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
