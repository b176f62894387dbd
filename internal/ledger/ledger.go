// Package ledger implements the balance-accounting engine: it turns
// expenses into pairwise balance updates, applies settlements, and answers
// balance and history queries. It owns the only mutation paths into the
// entity store and persists the full state after every successful mutation.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/store"
	"github.com/splitledger/splitledger/internal/storage"
)

// Ledger coordinates the entity store, the split calculator, and the
// persistence backend. A single mutex serializes every operation: an expense
// touches two users' balance maps, and the mirror invariant between them
// only holds if no other mutation interleaves.
type Ledger struct {
	mu      sync.Mutex
	store   *store.Store
	persist storage.Store
}

// New builds a ledger on top of the given persistence backend and loads the
// existing snapshot. A missing or unreadable snapshot starts the ledger
// empty rather than failing startup.
func New(ctx context.Context, persist storage.Store) (*Ledger, error) {
	snap, err := persist.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load persisted state, starting empty", "error", err)
	}

	s := store.New()
	s.Restore(snap)

	return &Ledger{store: s, persist: persist}, nil
}

// ExpenseInput carries the caller-supplied fields for a new expense.
type ExpenseInput struct {
	Description string
	Amount      float64
	PaidBy      string
	SplitAmong  []string
	// GroupID optionally attaches the expense to a group. An ID that does
	// not resolve is ignored: the expense is still created, just not
	// attached anywhere.
	GroupID string
	// Date overrides the expense timestamp (models.DateFormat). Empty means
	// time of creation.
	Date         string
	SplitType    models.SplitType
	SplitDetails map[string]float64
}

// CreateUser registers a new user and persists the state.
func (l *Ledger) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user := models.NewUser(l.store.NextUserID(), name, email)
	l.store.AddUser(user)

	if err := l.save(ctx); err != nil {
		return nil, err
	}
	slog.Info("User created", "user_id", user.ID, "name", user.Name)
	return copyUser(user), nil
}

// CreateGroup registers a new group with the creator as its first member.
func (l *Ledger) CreateGroup(ctx context.Context, name, creatorID string) (*models.Group, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.store.User(creatorID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, creatorID)
	}

	group := models.NewGroup(l.store.NextGroupID(), name, creatorID)
	l.store.AddGroup(group)

	if err := l.save(ctx); err != nil {
		return nil, err
	}
	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "created_by", creatorID)
	return copyGroup(group), nil
}

// AddMember adds a user to a group's membership.
func (l *Ledger) AddMember(ctx context.Context, groupID, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	group, ok := l.store.Group(groupID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	if _, ok := l.store.User(userID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	if !group.AddMember(userID) {
		return fmt.Errorf("%w: %s in %s", ErrAlreadyMember, userID, groupID)
	}

	if err := l.save(ctx); err != nil {
		return err
	}
	slog.Info("Member added", "group_id", groupID, "user_id", userID)
	return nil
}

// RemoveMember removes a user from a group's membership. The creator can
// never be removed.
func (l *Ledger) RemoveMember(ctx context.Context, groupID, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	group, ok := l.store.Group(groupID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	if userID == group.CreatedBy {
		return fmt.Errorf("%w: %s created %s", ErrCreatorImmutable, userID, groupID)
	}
	if !group.RemoveMember(userID) {
		return fmt.Errorf("%w: %s in %s", ErrNotMember, userID, groupID)
	}

	if err := l.save(ctx); err != nil {
		return err
	}
	slog.Info("Member removed", "group_id", groupID, "user_id", userID)
	return nil
}

// AddExpense validates the input, creates the expense record, attaches it to
// its group when the group resolves, and applies the owed shares to the
// payer's and participants' balances. Validation runs before any mutation:
// a rejected expense leaves no record and no balance change.
func (l *Ledger) AddExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidAmount, in.Amount)
	}

	payer, ok := l.store.User(in.PaidBy)
	if !ok {
		return nil, fmt.Errorf("%w: payer %s", ErrUnknownUser, in.PaidBy)
	}
	participants := make([]*models.User, len(in.SplitAmong))
	for i, userID := range in.SplitAmong {
		p, ok := l.store.User(userID)
		if !ok {
			return nil, fmt.Errorf("%w: participant %s", ErrUnknownUser, userID)
		}
		participants[i] = p
	}

	shares, err := calculator.Split(in.Amount, in.SplitType, in.SplitAmong, in.SplitDetails)
	if err != nil {
		return nil, err
	}

	details := in.SplitDetails
	if details == nil {
		details = map[string]float64{}
	}
	date := in.Date
	if date == "" {
		date = time.Now().Format(models.DateFormat)
	}

	expense := &models.Expense{
		ID:           l.store.NextExpenseID(),
		Description:  in.Description,
		Amount:       in.Amount,
		PaidBy:       in.PaidBy,
		SplitAmong:   in.SplitAmong,
		Date:         date,
		SplitType:    in.SplitType,
		SplitDetails: details,
	}
	l.store.AddExpense(expense)

	if in.GroupID != "" {
		if group, ok := l.store.Group(in.GroupID); ok {
			group.Expenses = append(group.Expenses, expense.ID)
		} else {
			// Unknown group is a soft failure: the expense stands on its
			// own instead of being rejected.
			slog.Warn("Expense not attached, group not found", "expense_id", expense.ID, "group_id", in.GroupID)
		}
	}

	applyExpense(payer, participants, in.SplitAmong, shares)

	if err := l.save(ctx); err != nil {
		return nil, err
	}
	expensesCreated.WithLabelValues(string(in.SplitType)).Inc()
	slog.Info("Expense added",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"paid_by", expense.PaidBy,
		"split_type", expense.SplitType,
		"participants", len(expense.SplitAmong),
	)
	return expense, nil
}

// Settle records a direct repayment from payer to receiver, independent of
// any expense. Both parties must exist; the check runs before any mutation.
func (l *Ledger) Settle(ctx context.Context, payerID, receiverID string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}
	payer, ok := l.store.User(payerID)
	if !ok {
		return fmt.Errorf("%w: payer %s", ErrUnknownUser, payerID)
	}
	receiver, ok := l.store.User(receiverID)
	if !ok {
		return fmt.Errorf("%w: receiver %s", ErrUnknownUser, receiverID)
	}

	applySettlement(payer, receiver, amount)

	if err := l.save(ctx); err != nil {
		return err
	}
	settlementsRecorded.Inc()
	slog.Info("Balance settled", "payer", payerID, "receiver", receiverID, "amount", amount)
	return nil
}

// Reset clears every collection and persists the empty state.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.store.Restore(models.NewSnapshot())
	if err := l.save(ctx); err != nil {
		return err
	}
	slog.Info("All data reset")
	return nil
}

// Close releases the persistence backend.
func (l *Ledger) Close() error {
	return l.persist.Close()
}

// save writes the full snapshot through the persistence backend. Called with
// the lock held so the snapshot cannot change mid-write.
func (l *Ledger) save(ctx context.Context) error {
	if err := l.persist.Save(ctx, l.store.Snapshot()); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}
