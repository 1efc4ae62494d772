package shipper

import "strings"

// Role is the account role stored on every user document.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleShipper Role = "shipper"
	RoleUser    Role = "user"
)

// ParseRole normalizes a stored role. Unknown roles are kept lower-cased.
func ParseRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// IsField reports whether the role belongs to people working outside the
// back office (shippers and end users).
func (r Role) IsField() bool {
	return r == RoleShipper || r == RoleUser
}

func (r Role) String() string {
	return string(r)
}
