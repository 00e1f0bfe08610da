// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package sec

import "slices"

// UserRole is the authorization level of a back-office account.
type UserRole string

const (
	// RoleAdmin manages listings, accounts and the locality index.
	RoleAdmin UserRole = "admin"

	// RoleEditor manages listings, images and the enquiry inbox.
	RoleEditor UserRole = "editor"
)

// roleOrder lists roles from least to most privileged.
var roleOrder = []UserRole{RoleEditor, RoleAdmin}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return slices.Contains(roleOrder, r)
}

// AtLeast reports whether r grants everything target grants. Unknown roles grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	have := slices.Index(roleOrder, r)
	return have >= 0 && have >= slices.Index(roleOrder, target)
}
