package model

import "strings"

// Role is the closed set of permission levels a user can hold.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleCabinetMaker Role = "CABINET_MAKER"
	RoleInstaller    Role = "INSTALLER"
)

// ParseRole coerces a role string to a Role, case-insensitively.
// The boolean reports whether the value is one of the allowed roles.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(s)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCabinetMaker:
		return RoleCabinetMaker, true
	case RoleInstaller:
		return RoleInstaller, true
	default:
		return "", false
	}
}
