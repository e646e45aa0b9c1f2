// Package identity models the verified caller of a request.
package identity

import "fmt"

// Role is a closed set; the zero value is not a valid role.
type Role uint8

const (
	RoleCustomer Role = iota + 1
	RoleChef
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleChef:
		return "chef"
	default:
		return "unknown"
	}
}

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleChef
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "chef":
		return RoleChef, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// Identity is what the auth guard resolves from a bearer token.
type Identity struct {
	UserID uint
	Role   Role
}

func (id Identity) IsCustomer() bool { return id.Role == RoleCustomer }

func (id Identity) IsChef() bool { return id.Role == RoleChef }
