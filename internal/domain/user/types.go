package user

import "strings"

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"

	// RoleSystem is held by background jobs only. NewRole never returns it.
	RoleSystem Role = "SYSTEM"
)

var roleAliases = map[string]Role{
	"CLIENT":        RoleClient,
	"CLIENTE":       RoleClient,
	"EMPLOYEE":      RoleEmployee,
	"EMPLEADO":      RoleEmployee,
	"ADMIN":         RoleAdmin,
	"ADMINISTRADOR": RoleAdmin,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleEmployee, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role works on behalf of the venue.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "ROLE_")
	role, ok := roleAliases[key]
	if !ok {
		return "", ErrInvalidRole
	}
	return role, nil
}
