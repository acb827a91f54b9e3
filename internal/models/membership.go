package models

import "time"

// Role is a membership role within a family
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleSteward Role = "STEWARD"
	RoleMember  Role = "MEMBER"
)

// roleRank orders roles for privilege checks. STEWARD sits between MEMBER
// and OWNER but currently carries no extra privileges.
var roleRank = map[Role]int{
	RoleMember:  0,
	RoleSteward: 1,
	RoleOwner:   2,
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of min
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Membership binds one account to one family. PersonID, when set, is the
// person node the account has claimed as themselves; a person can be
// claimed by at most one membership.
type Membership struct {
	ID        int64
	FamilyID  int64
	AccountID int64
	Role      Role
	PersonID  *int64
	CreatedAt time.Time
}
