// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order moves through its lifecycle exclusively via the transition table in
// status.go; no other component branches on status values. Every transition
// that touches money (assignment escrow, cancellation refund, settlement) is
// coordinated by the application layer inside a single unit of work, so the
// status change and the ledger mutation commit or roll back together.
package order
