package models

// User represents a registered participant.
type User struct {
	// ID is the unique identifier for the user (e.g. "U001").
	ID string `json:"user_id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's contact address.
	Email string `json:"email"`

	// Balances maps a counterparty user ID to the signed amount held against
	// them: positive means the counterparty owes this user, negative means
	// this user owes the counterparty. A user never holds an entry for
	// itself, and entries below Tolerance are pruned rather than kept at
	// zero. Mutated only by the ledger.
	Balances map[string]float64 `json:"balances"`
}

// NewUser returns a user with an empty, non-nil balance map.
func NewUser(id, name, email string) *User {
	return &User{
		ID:       id,
		Name:     name,
		Email:    email,
		Balances: make(map[string]float64),
	}
}

// TotalBalance is the sum of all balance entries: the net amount owed to (+)
// or by (-) this user across everyone.
func (u *User) TotalBalance() float64 {
	var total float64
	for _, amount := range u.Balances {
		total += amount
	}
	return total
}
