package models

import "time"

// Family is an invite-only group identified by a unique join code.
// Deleting a family cascades to its memberships, persons and relationships.
type Family struct {
	ID        int64
	Name      string
	JoinCode  string
	CreatedAt time.Time
}

// FamilyMembership is one row of an account's family list: the family plus
// the account's role and claimed person in it
type FamilyMembership struct {
	Family   Family
	Role     Role
	PersonID *int64
}

// MemberInfo describes one member of a family for listing
type MemberInfo struct {
	MembershipID int64
	AccountID    int64
	AccountName  string
	AccountEmail string
	Role         Role
	PersonID     *int64
	JoinedAt     time.Time
}

// LeaveResult reports what leaving a family did
type LeaveResult struct {
	DeletedFamily bool
	Transferred   bool
}
