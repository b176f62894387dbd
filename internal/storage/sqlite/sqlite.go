// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. The ledger persists by full-state overwrite, so
// Save rewrites every table inside one transaction; the transaction is what
// makes the overwrite atomic.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the persisted state with the given snapshot.
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"group_expenses", "group_members", "groups",
		"expense_details", "expense_participants", "expenses",
		"balances", "users",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, u := range snap.Users {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO users (id, name, email) VALUES (?, ?, ?)",
			u.ID, u.Name, u.Email,
		); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		for counterparty, amount := range u.Balances {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO balances (user_id, counterparty_id, amount) VALUES (?, ?, ?)",
				u.ID, counterparty, amount,
			); err != nil {
				return fmt.Errorf("failed to insert balance: %w", err)
			}
		}
	}

	for _, e := range snap.Expenses {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (id, description, amount, paid_by, date, split_type) VALUES (?, ?, ?, ?, ?, ?)",
			e.ID, e.Description, e.Amount, e.PaidBy, e.Date, string(e.SplitType),
		); err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		for i, userID := range e.SplitAmong {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, position, user_id) VALUES (?, ?, ?)",
				e.ID, i, userID,
			); err != nil {
				return fmt.Errorf("failed to insert expense participant: %w", err)
			}
		}
		for userID, value := range e.SplitDetails {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO expense_details (expense_id, user_id, value) VALUES (?, ?, ?)",
				e.ID, userID, value,
			); err != nil {
				return fmt.Errorf("failed to insert split detail: %w", err)
			}
		}
	}

	for _, g := range snap.Groups {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO groups (id, name, created_by) VALUES (?, ?, ?)",
			g.ID, g.Name, g.CreatedBy,
		); err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		for i, userID := range g.Members {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO group_members (group_id, position, user_id) VALUES (?, ?, ?)",
				g.ID, i, userID,
			); err != nil {
				return fmt.Errorf("failed to insert group member: %w", err)
			}
		}
		for i, expenseID := range g.Expenses {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO group_expenses (group_id, position, expense_id) VALUES (?, ?, ?)",
				g.ID, i, expenseID,
			); err != nil {
				return fmt.Errorf("failed to insert group expense: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load rebuilds the snapshot from the database.
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := models.NewSnapshot()

	if err := s.loadUsers(ctx, snap); err != nil {
		return models.NewSnapshot(), err
	}
	if err := s.loadExpenses(ctx, snap); err != nil {
		return models.NewSnapshot(), err
	}
	if err := s.loadGroups(ctx, snap); err != nil {
		return models.NewSnapshot(), err
	}
	return snap, nil
}

func (s *Store) loadUsers(ctx context.Context, snap *models.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email FROM users")
	if err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name, email string
		if err := rows.Scan(&id, &name, &email); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		snap.Users[id] = models.NewUser(id, name, email)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate users: %w", err)
	}

	balanceRows, err := s.db.QueryContext(ctx, "SELECT user_id, counterparty_id, amount FROM balances")
	if err != nil {
		return fmt.Errorf("failed to query balances: %w", err)
	}
	defer balanceRows.Close()

	for balanceRows.Next() {
		var userID, counterparty string
		var amount float64
		if err := balanceRows.Scan(&userID, &counterparty, &amount); err != nil {
			return fmt.Errorf("failed to scan balance: %w", err)
		}
		if u, ok := snap.Users[userID]; ok {
			u.Balances[counterparty] = amount
		}
	}
	return balanceRows.Err()
}

func (s *Store) loadExpenses(ctx context.Context, snap *models.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by, date, split_type FROM expenses")
	if err != nil {
		return fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e := &models.Expense{
			SplitAmong:   []string{},
			SplitDetails: make(map[string]float64),
		}
		var splitType string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PaidBy, &e.Date, &splitType); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		e.SplitType = models.SplitType(splitType)
		snap.Expenses[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}

	participantRows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, user_id FROM expense_participants ORDER BY expense_id, position")
	if err != nil {
		return fmt.Errorf("failed to query expense participants: %w", err)
	}
	defer participantRows.Close()

	for participantRows.Next() {
		var expenseID, userID string
		if err := participantRows.Scan(&expenseID, &userID); err != nil {
			return fmt.Errorf("failed to scan expense participant: %w", err)
		}
		if e, ok := snap.Expenses[expenseID]; ok {
			e.SplitAmong = append(e.SplitAmong, userID)
		}
	}
	if err := participantRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	detailRows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, user_id, value FROM expense_details")
	if err != nil {
		return fmt.Errorf("failed to query split details: %w", err)
	}
	defer detailRows.Close()

	for detailRows.Next() {
		var expenseID, userID string
		var value float64
		if err := detailRows.Scan(&expenseID, &userID, &value); err != nil {
			return fmt.Errorf("failed to scan split detail: %w", err)
		}
		if e, ok := snap.Expenses[expenseID]; ok {
			e.SplitDetails[userID] = value
		}
	}
	return detailRows.Err()
}

func (s *Store) loadGroups(ctx context.Context, snap *models.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_by FROM groups")
	if err != nil {
		return fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		g := &models.Group{Members: []string{}, Expenses: []string{}}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy); err != nil {
			return fmt.Errorf("failed to scan group: %w", err)
		}
		snap.Groups[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate groups: %w", err)
	}

	memberRows, err := s.db.QueryContext(ctx,
		"SELECT group_id, user_id FROM group_members ORDER BY group_id, position")
	if err != nil {
		return fmt.Errorf("failed to query group members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var groupID, userID string
		if err := memberRows.Scan(&groupID, &userID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		if g, ok := snap.Groups[groupID]; ok {
			g.Members = append(g.Members, userID)
		}
	}
	if err := memberRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}

	expenseRows, err := s.db.QueryContext(ctx,
		"SELECT group_id, expense_id FROM group_expenses ORDER BY group_id, position")
	if err != nil {
		return fmt.Errorf("failed to query group expenses: %w", err)
	}
	defer expenseRows.Close()

	for expenseRows.Next() {
		var groupID, expenseID string
		if err := expenseRows.Scan(&groupID, &expenseID); err != nil {
			return fmt.Errorf("failed to scan group expense: %w", err)
		}
		if g, ok := snap.Groups[groupID]; ok {
			g.Expenses = append(g.Expenses, expenseID)
		}
	}
	return expenseRows.Err()
}
