package models

// Group represents a named set of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (e.g. "G001").
	ID string `json:"group_id"`

	// Name is the display name of the group (e.g. "Roommates").
	Name string `json:"name"`

	// CreatedBy is the ID of the user who created the group. The creator is
	// always the first member and can never be removed.
	CreatedBy string `json:"created_by"`

	// Members lists member user IDs in the order they joined.
	Members []string `json:"members"`

	// Expenses lists the IDs of expenses attached to this group, in
	// creation order.
	Expenses []string `json:"expenses"`
}

// NewGroup returns a group with the creator as its first member.
func NewGroup(id, name, createdBy string) *Group {
	return &Group{
		ID:        id,
		Name:      name,
		CreatedBy: createdBy,
		Members:   []string{createdBy},
		Expenses:  []string{},
	}
}

// HasMember reports whether userID is a member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// AddMember appends userID to the membership. It reports false if the user
// is already a member.
func (g *Group) AddMember(userID string) bool {
	if g.HasMember(userID) {
		return false
	}
	g.Members = append(g.Members, userID)
	return true
}

// RemoveMember removes userID from the membership. It reports false if the
// user is not a member or is the creator.
func (g *Group) RemoveMember(userID string) bool {
	if userID == g.CreatedBy {
		return false
	}
	for i, m := range g.Members {
		if m == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return true
		}
	}
	return false
}
