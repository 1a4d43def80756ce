// Package ledger contains the Account aggregate and its append-only entry
// journal. Every balance movement is an Entry; the balance itself is derived
// state carried along for fast reads. Escrow entries stay "open" until they
// are either consumed by a settlement or refunded by a cancellation, never
// both.
package ledger
