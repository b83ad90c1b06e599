package types

// RoleAdmin is the role string that unlocks admin-gated operations.
const RoleAdmin = "Admin"

// Actor is the authenticated identity attached to every mutating operation.
type Actor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the actor may perform admin-gated operations.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
