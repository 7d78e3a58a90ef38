package enums

import "fmt"

// UserRole is the coarse role carried in access-token claims. Superuser
// rights are a separate boolean flag on the user row, not a role.
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleHR         UserRole = "hr"
	UserRoleOperations UserRole = "operations"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleHR,
	UserRoleOperations,
}

// IsValid reports whether the value matches the canonical role enum.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
