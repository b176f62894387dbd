package models

import "testing"

func TestNewGroupIncludesCreator(t *testing.T) {
	g := NewGroup("G001", "Roommates", "U001")
	if !g.HasMember("U001") {
		t.Error("creator should be a member")
	}
	if len(g.Members) != 1 {
		t.Errorf("got %d members, want 1", len(g.Members))
	}
}

func TestAddMember(t *testing.T) {
	g := NewGroup("G001", "Roommates", "U001")

	if !g.AddMember("U002") {
		t.Error("adding a new member should succeed")
	}
	if g.AddMember("U002") {
		t.Error("adding an existing member should fail")
	}
	if len(g.Members) != 2 {
		t.Errorf("got %d members, want 2", len(g.Members))
	}
}

func TestRemoveMember(t *testing.T) {
	g := NewGroup("G001", "Roommates", "U001")
	g.AddMember("U002")

	if !g.RemoveMember("U002") {
		t.Error("removing a member should succeed")
	}
	if g.RemoveMember("U002") {
		t.Error("removing a non-member should fail")
	}
	if g.RemoveMember("U001") {
		t.Error("removing the creator should fail")
	}
	if !g.HasMember("U001") {
		t.Error("creator must remain a member")
	}
}

func TestRemoveMemberPreservesOrder(t *testing.T) {
	g := NewGroup("G001", "Roommates", "U001")
	g.AddMember("U002")
	g.AddMember("U003")
	g.AddMember("U004")

	g.RemoveMember("U003")

	want := []string{"U001", "U002", "U004"}
	if len(g.Members) != len(want) {
		t.Fatalf("got %d members, want %d", len(g.Members), len(want))
	}
	for i, id := range want {
		if g.Members[i] != id {
			t.Errorf("Members[%d] = %s, want %s", i, g.Members[i], id)
		}
	}
}
