package ledger

import "errors"

// Sentinel errors for ledger operations. Callers match them with errors.Is;
// split validation failures surface calculator.ErrInvalidSplit.
var (
	// ErrUnknownUser indicates a referenced payer, participant, or
	// settlement party that does not exist.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownGroup indicates a referenced group that does not exist.
	// Expense creation never returns it: an expense naming a missing group
	// is still created, just not attached anywhere.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrInvalidAmount indicates a non-positive expense or settlement
	// amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAlreadyMember indicates an attempt to add a user who is already in
	// the group.
	ErrAlreadyMember = errors.New("user already in group")

	// ErrNotMember indicates an attempt to remove a user who is not in the
	// group.
	ErrNotMember = errors.New("user not in group")

	// ErrCreatorImmutable indicates an attempt to remove a group's creator
	// from its membership.
	ErrCreatorImmutable = errors.New("group creator cannot be removed")
)
