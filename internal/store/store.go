// Package store holds the in-memory entity collections: users, expenses,
// and groups keyed by identifier. It is the single owner of all three; other
// packages reach entities only through its lookups. The store itself does no
// locking — the ledger serializes access.
package store

import (
	"fmt"

	"github.com/splitledger/splitledger/internal/models"
)

// Store owns the entity collections.
type Store struct {
	users    map[string]*models.User
	expenses map[string]*models.Expense
	groups   map[string]*models.Group
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.Restore(models.NewSnapshot())
	return s
}

// Restore replaces the store's contents with the given snapshot. Nil
// collections in the snapshot become empty ones, so a partially populated
// document loads cleanly.
func (s *Store) Restore(snap *models.Snapshot) {
	s.users = snap.Users
	s.expenses = snap.Expenses
	s.groups = snap.Groups
	if s.users == nil {
		s.users = make(map[string]*models.User)
	}
	if s.expenses == nil {
		s.expenses = make(map[string]*models.Expense)
	}
	if s.groups == nil {
		s.groups = make(map[string]*models.Group)
	}
	// Old documents may omit per-user maps; queries expect them non-nil.
	for _, u := range s.users {
		if u.Balances == nil {
			u.Balances = make(map[string]float64)
		}
	}
}

// Snapshot exposes the current state as a persistence document. The snapshot
// shares memory with the store; callers must serialize it before releasing
// the ledger lock.
func (s *Store) Snapshot() *models.Snapshot {
	return &models.Snapshot{
		Users:    s.users,
		Expenses: s.expenses,
		Groups:   s.groups,
	}
}

// User looks up a user by ID.
func (s *Store) User(id string) (*models.User, bool) {
	u, ok := s.users[id]
	return u, ok
}

// Expense looks up an expense by ID.
func (s *Store) Expense(id string) (*models.Expense, bool) {
	e, ok := s.expenses[id]
	return e, ok
}

// Group looks up a group by ID.
func (s *Store) Group(id string) (*models.Group, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// AddUser registers a user under its ID.
func (s *Store) AddUser(u *models.User) {
	s.users[u.ID] = u
}

// AddExpense registers an expense under its ID.
func (s *Store) AddExpense(e *models.Expense) {
	s.expenses[e.ID] = e
}

// AddGroup registers a group under its ID.
func (s *Store) AddGroup(g *models.Group) {
	s.groups[g.ID] = g
}

// Users returns the user collection. Read-only for callers.
func (s *Store) Users() map[string]*models.User {
	return s.users
}

// Expenses returns the expense collection. Read-only for callers.
func (s *Store) Expenses() map[string]*models.Expense {
	return s.expenses
}

// Groups returns the group collection. Read-only for callers.
func (s *Store) Groups() map[string]*models.Group {
	return s.groups
}

// NextUserID returns the identifier for the next user to be created.
func (s *Store) NextUserID() string {
	return fmt.Sprintf("U%03d", len(s.users)+1)
}

// NextExpenseID returns the identifier for the next expense to be created.
func (s *Store) NextExpenseID() string {
	return fmt.Sprintf("E%04d", len(s.expenses)+1)
}

// NextGroupID returns the identifier for the next group to be created.
func (s *Store) NextGroupID() string {
	return fmt.Sprintf("G%03d", len(s.groups)+1)
}
