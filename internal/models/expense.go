package models

// SplitType determines how an expense amount is divided among participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly across all participants.
	SplitEqual SplitType = "equal"

	// SplitPercentage charges each participant a percentage of the amount,
	// taken from the expense's split details. Percentages must sum to 100.
	SplitPercentage SplitType = "percentage"

	// SplitExact charges each participant the exact amount recorded for them
	// in the split details. The detail amounts must sum to the total.
	SplitExact SplitType = "exact"
)

// Valid reports whether t is one of the known split types.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitPercentage, SplitExact:
		return true
	}
	return false
}

// Expense represents a recorded cost split among a set of users.
// Expenses are immutable once created; there is no update or delete.
type Expense struct {
	// ID is the unique identifier for the expense (e.g. "E0001").
	ID string `json:"expense_id"`

	// Description is the human-readable label for the expense.
	Description string `json:"description"`

	// Amount is the total expense amount. Always positive.
	Amount float64 `json:"amount"`

	// PaidBy is the ID of the user who fronted the money.
	PaidBy string `json:"paid_by"`

	// SplitAmong lists the participant user IDs, in the order supplied by
	// the caller. The payer may or may not be included; their own share is
	// economically inert either way.
	SplitAmong []string `json:"split_among"`

	// Date is the expense timestamp in DateFormat. Defaults to creation
	// time when the caller does not supply one.
	Date string `json:"date"`

	// SplitType selects the split policy.
	SplitType SplitType `json:"split_type"`

	// SplitDetails maps participant ID to a percentage (SplitPercentage) or
	// an exact amount (SplitExact). Empty for SplitEqual. A participant
	// listed in SplitAmong but absent here is charged nothing.
	SplitDetails map[string]float64 `json:"split_details"`
}
