// Package policy holds the pure authorization decisions: the role-based
// action table and the self-action guard. Nothing here touches the
// database or the request context; middleware feeds in claims extracted
// from the session token and maps denials to HTTP 403.
package policy

// Action identifies an operation the policy can be asked about.
type Action string

const (
	ActionUserCreate     Action = "user.create"
	ActionUserList       Action = "user.list"
	ActionUserView       Action = "user.view"
	ActionUserUpdate     Action = "user.update"
	ActionUserDelete     Action = "user.delete"
	ActionUserChangeRole Action = "user.change_role"
	ActionRoleCreate     Action = "role.create"
	ActionRoleList       Action = "role.list"
	ActionRoleView       Action = "role.view"
	ActionRoleUpdate     Action = "role.update"
	ActionRoleDelete     Action = "role.delete"
)

// Role ids seeded at install time. Superadmin and Admin form the
// privileged set; everything else is ordinary.
const (
	RoleSuperadmin uint64 = 1
	RoleAdmin      uint64 = 2
	RoleUser       uint64 = 3
)

// Policy is the decision table mapping actions to the role ids allowed
// to perform them. A nil entry means any authenticated role may act.
// The table is built once at startup and read-only afterwards.
type Policy struct {
	table map[Action]map[uint64]bool
}

// New builds the policy table. publicUserListing controls whether
// user.list requires a privileged role: the deployed revisions of this
// service disagreed on that point, so both behaviors stay available
// behind configuration instead of one being picked silently.
func New(publicUserListing bool) *Policy {
	privileged := map[uint64]bool{RoleSuperadmin: true, RoleAdmin: true}
	t := map[Action]map[uint64]bool{
		ActionUserCreate:     privileged,
		ActionUserView:       privileged,
		ActionUserUpdate:     privileged,
		ActionUserDelete:     privileged,
		ActionUserChangeRole: privileged,
		ActionRoleCreate:     privileged,
		ActionRoleUpdate:     privileged,
		ActionRoleDelete:     privileged,
		// Any authenticated requester may read roles.
		ActionRoleList: nil,
		ActionRoleView: nil,
	}
	if publicUserListing {
		t[ActionUserList] = nil
	} else {
		t[ActionUserList] = privileged
	}
	return &Policy{table: t}
}

// Allow reports whether the given role may perform the action. Unknown
// actions are denied.
func (p *Policy) Allow(roleID uint64, action Action) bool {
	allowed, ok := p.table[action]
	if !ok {
		return false
	}
	if allowed == nil {
		return true
	}
	return allowed[roleID]
}

// SelfAllowed reports whether a subject may run a guarded action against
// the given target. It denies exactly the self-action case: a subject
// may never change its own role through this path, whatever its role.
func SelfAllowed(actingID, targetID uint64) bool {
	return actingID != targetID
}
