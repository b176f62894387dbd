// Package models defines the core domain entities for splitledger.
//
// # Entities
//
//   - User: a participant in the system, holding a per-counterparty balance map
//   - Expense: a recorded cost with a payer, participants, and a split policy
//   - Group: a named set of users that collects expense references
//
// # Identifiers
//
// Entities reference each other by ID string only (no pointers), which keeps
// the object graph acyclic and makes the snapshot trivially serializable.
// IDs are assigned sequentially by the entity store (U001, E0001, G001) but
// every consumer treats them as opaque unique strings.
//
// # Balances
//
// Each pairwise balance is stored on both users' balance maps with opposite
// signs. Only the ledger package mutates balances; it always updates both
// sides in the same operation and prunes entries whose magnitude falls below
// Tolerance, which is what keeps the two views mirror images of each other.
package models

// Tolerance is the absolute threshold for money comparisons. Balance entries
// with a magnitude below it are treated as settled and removed.
const Tolerance = 0.01

// DateFormat is the canonical expense timestamp layout. Lexicographic order
// on this format is chronological order, so it doubles as the sort key for
// expense history.
const DateFormat = "2006-01-02 15:04:05"
