package model

import "time"

// Role represents a row in the `roles` table. Users reference this
// table via their RoleID field. The seed data creates three roles:
// 1 superadmin, 2 admin, 3 user; ids 1 and 2 form the privileged
// set used by the authorization policy.
//
// Fields:
//  ID          – numeric identifier of the role.
//  Description – human readable role name (e.g. "admin").
//  IsActive    – whether the role can still be assigned.
//  CreatedAt   – timestamp of creation.
type Role struct {
	ID          uint64    // roles.id
	Description string    // roles.description
	IsActive    bool      // roles.is_active
	CreatedAt   time.Time // roles.created_at
}

// RoleUpdate carries a partial update of a role.
type RoleUpdate struct {
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
