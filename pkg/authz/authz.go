// Package authz holds the role to permission decision table shared by the
// API server and every client. There is exactly one table; callers never
// switch on roles themselves.
package authz

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Role is the category assigned to a user account.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

// Permission is a discrete capability. The numeric values are stable wire and
// storage identities; they carry no ordering meaning. Zero is not a
// permission, so an unset value is always denied.
type Permission int

const (
	ViewProfile Permission = 1
	EditProfile Permission = 2
	ViewUsers   Permission = 3
	CreateUser  Permission = 4
	EditUser    Permission = 5
	DeleteUser  Permission = 6
)

var ErrUnknownRole = errors.New("authz: unknown role")

var roleNames = map[Role]string{
	RoleUser:  "User",
	RoleAdmin: "Admin",
}

var permissionNames = map[Permission]string{
	ViewProfile: "ViewProfile",
	EditProfile: "EditProfile",
	ViewUsers:   "ViewUsers",
	CreateUser:  "CreateUser",
	EditUser:    "EditUser",
	DeleteUser:  "DeleteUser",
}

// table is the authorization policy. Anything not listed is denied.
var table = map[Role]map[Permission]struct{}{
	RoleUser: {
		ViewProfile: {},
		EditProfile: {},
	},
	RoleAdmin: {
		ViewProfile: {},
		EditProfile: {},
		ViewUsers:   {},
		CreateUser:  {},
		EditUser:    {},
		DeleteUser:  {},
	},
}

// Grants reports whether role holds permission p.
func Grants(role Role, p Permission) bool {
	perms, ok := table[role]
	if !ok {
		return false
	}
	_, ok = perms[p]
	return ok
}

// PermissionsFor returns the permissions granted to role, ordered by code.
func PermissionsFor(role Role) []Permission {
	perms := make([]Permission, 0, len(table[role]))
	for p := range table[role] {
		perms = append(perms, p)
	}
	slices.Sort(perms)
	return perms
}

// AllPermissions returns every named permission ordered by code.
func AllPermissions() []Permission {
	perms := make([]Permission, 0, len(permissionNames))
	for p := range permissionNames {
		perms = append(perms, p)
	}
	slices.Sort(perms)
	return perms
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Valid reports whether r is one of the built-in roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole accepts the role name case-insensitively ("Admin", "admin", "USER").
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for role, name := range roleNames {
		if strings.EqualFold(name, s) {
			return role, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Permission(%d)", int(p))
}
