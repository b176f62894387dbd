package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("empty database loads empty snapshot", func(t *testing.T) {
		snap, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(snap.Users) != 0 || len(snap.Expenses) != 0 || len(snap.Groups) != 0 {
			t.Errorf("expected empty snapshot, got %+v", snap)
		}
	})

	t.Run("save and load round trip", func(t *testing.T) {
		original := models.NewSnapshot()

		alice := models.NewUser("U001", "Alice", "alice@example.com")
		alice.Balances["U002"] = 30.0
		bob := models.NewUser("U002", "Bob", "bob@example.com")
		bob.Balances["U001"] = -30.0
		original.Users["U001"] = alice
		original.Users["U002"] = bob

		original.Expenses["E0001"] = &models.Expense{
			ID:           "E0001",
			Description:  "Dinner",
			Amount:       60.0,
			PaidBy:       "U001",
			SplitAmong:   []string{"U002", "U001"}, // deliberately not sorted
			Date:         "2026-08-24 19:30:00",
			SplitType:    models.SplitExact,
			SplitDetails: map[string]float64{"U001": 30, "U002": 30},
		}

		group := models.NewGroup("G001", "Trip", "U001")
		group.AddMember("U002")
		group.Expenses = append(group.Expenses, "E0001")
		original.Groups["G001"] = group

		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !reflect.DeepEqual(original, loaded) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
		}

		// Ordering of list fields must survive, not just membership.
		if got := loaded.Expenses["E0001"].SplitAmong; !reflect.DeepEqual(got, []string{"U002", "U001"}) {
			t.Errorf("participant order = %v, want [U002 U001]", got)
		}
	})

	t.Run("save replaces previous state", func(t *testing.T) {
		replacement := models.NewSnapshot()
		replacement.Users["U003"] = models.NewUser("U003", "Charlie", "charlie@example.com")

		if err := store.Save(ctx, replacement); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded.Users) != 1 {
			t.Errorf("got %d users, want 1", len(loaded.Users))
		}
		if _, ok := loaded.Users["U003"]; !ok {
			t.Error("expected U003 to survive the overwrite")
		}
		if len(loaded.Expenses) != 0 || len(loaded.Groups) != 0 {
			t.Error("expected old expenses and groups to be gone")
		}
	})
}
