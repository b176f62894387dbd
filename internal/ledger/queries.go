package ledger

import (
	"fmt"
	"sort"

	"github.com/splitledger/splitledger/internal/models"
)

// Queries return copies of mutable entities so callers can read them after
// the lock is released. Expenses are immutable once created and are shared
// as-is.

// GetUser returns a user by ID.
func (l *Ledger) GetUser(userID string) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.store.User(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	return copyUser(user), nil
}

// ListUsers returns all users ordered by ID.
func (l *Ledger) ListUsers() []*models.User {
	l.mu.Lock()
	defer l.mu.Unlock()

	users := make([]*models.User, 0, len(l.store.Users()))
	for _, u := range l.store.Users() {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// GetGroup returns a group by ID.
func (l *Ledger) GetGroup(groupID string) (*models.Group, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	group, ok := l.store.Group(groupID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	return copyGroup(group), nil
}

// UserBalances returns a copy of the user's balance map. An unknown user
// has no balances.
func (l *Ledger) UserBalances(userID string) map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.store.User(userID)
	if !ok {
		return map[string]float64{}
	}
	balances := make(map[string]float64, len(user.Balances))
	for counterparty, amount := range user.Balances {
		balances[counterparty] = amount
	}
	return balances
}

// TotalBalance returns the user's net position: positive means they are owed
// money overall, negative means they owe. An unknown user's balance is zero.
func (l *Ledger) TotalBalance(userID string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.store.User(userID)
	if !ok {
		return 0.0
	}
	return user.TotalBalance()
}

// UserExpenses returns every expense where the user is the payer or a
// participant, most recent first. Ties on the timestamp keep creation order.
func (l *Ledger) UserExpenses(userID string) []*models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	var expenses []*models.Expense
	for _, e := range l.store.Expenses() {
		if e.PaidBy == userID || contains(e.SplitAmong, userID) {
			expenses = append(expenses, e)
		}
	}

	// Sequential IDs encode creation order; establishing it first makes the
	// stable date sort break ties by insertion.
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date > expenses[j].Date })
	return expenses
}

// GroupExpenses returns the group's expenses in the order they were
// attached. Expense IDs that no longer resolve are skipped rather than
// failing the query. An unknown group has no expenses.
func (l *Ledger) GroupExpenses(groupID string) []*models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	group, ok := l.store.Group(groupID)
	if !ok {
		return nil
	}

	expenses := make([]*models.Expense, 0, len(group.Expenses))
	for _, expenseID := range group.Expenses {
		if e, ok := l.store.Expense(expenseID); ok {
			expenses = append(expenses, e)
		}
	}
	return expenses
}

func copyUser(u *models.User) *models.User {
	dup := *u
	dup.Balances = make(map[string]float64, len(u.Balances))
	for counterparty, amount := range u.Balances {
		dup.Balances[counterparty] = amount
	}
	return &dup
}

func copyGroup(g *models.Group) *models.Group {
	dup := *g
	dup.Members = append([]string(nil), g.Members...)
	dup.Expenses = append([]string(nil), g.Expenses...)
	return &dup
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
