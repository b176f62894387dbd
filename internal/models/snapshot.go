package models

// Snapshot is the full persisted state: the three entity collections as
// top-level maps keyed by identifier. It is the document exchanged with the
// storage layer; serializing and deserializing a snapshot must reproduce
// every field, number, and list ordering exactly.
type Snapshot struct {
	Users    map[string]*User    `json:"users"`
	Expenses map[string]*Expense `json:"expenses"`
	Groups   map[string]*Group   `json:"groups"`
}

// NewSnapshot returns an empty snapshot with all collections allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:    make(map[string]*User),
		Expenses: make(map[string]*Expense),
		Groups:   make(map[string]*Group),
	}
}
