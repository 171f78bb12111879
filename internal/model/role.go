// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain values shared across the application:
// staff roles, content and lead statuses, event levels and the error taxonomy.
package model

// Role is a staff role. The set is closed.
type Role string

// Staff roles.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleSales      Role = "sales"
)

// AllRoles lists every role in descending privilege order.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor, RoleSales}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleSales:
		return true
	}
	return false
}

// Label returns a human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleEditor:
		return "Editor"
	case RoleSales:
		return "Sales"
	}
	return "Unknown"
}

// ParseRole converts a string to a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
