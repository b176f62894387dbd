package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

func testSnapshot() *models.Snapshot {
	snap := models.NewSnapshot()

	alice := models.NewUser("U001", "Alice", "alice@example.com")
	alice.Balances["U002"] = 25.0
	bob := models.NewUser("U002", "Bob", "bob@example.com")
	bob.Balances["U001"] = -25.0
	snap.Users[alice.ID] = alice
	snap.Users[bob.ID] = bob

	snap.Expenses["E0001"] = &models.Expense{
		ID:           "E0001",
		Description:  "Lunch",
		Amount:       50.0,
		PaidBy:       "U001",
		SplitAmong:   []string{"U001", "U002"},
		Date:         "2026-08-24 12:00:00",
		SplitType:    models.SplitEqual,
		SplitDetails: map[string]float64{},
	}

	group := models.NewGroup("G001", "Roommates", "U001")
	group.AddMember("U002")
	group.Expenses = append(group.Expenses, "E0001")
	snap.Groups[group.ID] = group

	return snap
}

func TestRoundTrip(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	original := testSnapshot()
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
}

func TestRoundTripIsByteStable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	store, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	// Saving a freshly loaded snapshot reproduces the document exactly.
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Save(ctx, loaded); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("serialized state changed across a load/save cycle:\n%s\nvs\n%s", first, second)
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load of missing file should not error, got: %v", err)
	}
	if len(snap.Users) != 0 || len(snap.Expenses) != 0 || len(snap.Groups) != 0 {
		t.Errorf("missing file should load empty, got %+v", snap)
	}
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	snap, err := store.Load(context.Background())
	if err == nil {
		t.Error("expected a parse error to be reported")
	}
	if snap == nil || len(snap.Users) != 0 {
		t.Errorf("corrupt file should still yield an empty snapshot, got %+v", snap)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := New(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := store.Save(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contains %v, want only state.json", names)
	}
}
