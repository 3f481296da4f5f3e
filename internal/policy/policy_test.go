package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivilegedActions(t *testing.T) {
	t.Parallel()

	p := New(false)
	privileged := []Action{
		ActionUserCreate, ActionUserList, ActionUserView, ActionUserUpdate,
		ActionUserDelete, ActionUserChangeRole,
		ActionRoleCreate, ActionRoleUpdate, ActionRoleDelete,
	}
	for _, action := range privileged {
		assert.True(t, p.Allow(RoleSuperadmin, action), "superadmin %s", action)
		assert.True(t, p.Allow(RoleAdmin, action), "admin %s", action)
		for _, role := range []uint64{RoleUser, 4, 99} {
			assert.False(t, p.Allow(role, action), "role %d %s", role, action)
		}
	}
}

func TestRoleReadsOpenToAnyRole(t *testing.T) {
	t.Parallel()

	p := New(false)
	for _, role := range []uint64{RoleSuperadmin, RoleAdmin, RoleUser, 7} {
		assert.True(t, p.Allow(role, ActionRoleList), "role %d", role)
		assert.True(t, p.Allow(role, ActionRoleView), "role %d", role)
	}
}

func TestUserListingToggle(t *testing.T) {
	t.Parallel()

	guarded := New(false)
	assert.False(t, guarded.Allow(RoleUser, ActionUserList))
	assert.True(t, guarded.Allow(RoleAdmin, ActionUserList))

	open := New(true)
	assert.True(t, open.Allow(RoleUser, ActionUserList))
	// The toggle affects listing only.
	assert.False(t, open.Allow(RoleUser, ActionUserView))
}

func TestUnknownActionDenied(t *testing.T) {
	t.Parallel()

	assert.False(t, New(false).Allow(RoleSuperadmin, Action("user.impersonate")))
}

func TestSelfAllowed(t *testing.T) {
	t.Parallel()

	for _, id := range []uint64{1, 7, 12345} {
		assert.False(t, SelfAllowed(id, id), "self id %d", id)
	}
	assert.True(t, SelfAllowed(7, 8))
	assert.True(t, SelfAllowed(8, 7))
}
