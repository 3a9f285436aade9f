package domain

import "strings"

// Role is the closed set of account roles. Authorization decisions compare
// typed values, never raw strings from a token or request body.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(v))) {
	case RoleEmployee:
		return RoleEmployee, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// CanDecideLeave reports whether the role may approve or reject leave
// requests.
func (r Role) CanDecideLeave() bool {
	return r == RoleAdmin
}

// CanManageUsers reports whether the role may list and administer accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
