package models

import (
	"testing"
	"time"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role  Role
		valid bool
	}{
		{RoleOwner, true},
		{RoleSteward, true},
		{RoleMember, true},
		{Role("ADMIN"), false},
		{Role(""), false},
		{Role("owner"), false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.valid {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.valid)
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     Role
		floor    Role
		expected bool
	}{
		{RoleOwner, RoleOwner, true},
		{RoleOwner, RoleMember, true},
		{RoleSteward, RoleOwner, false},
		{RoleSteward, RoleMember, true},
		{RoleMember, RoleOwner, false},
		{RoleMember, RoleMember, true},
	}

	for _, tt := range tests {
		if got := tt.role.AtLeast(tt.floor); got != tt.expected {
			t.Errorf("Role(%q).AtLeast(%q) = %v, want %v", tt.role, tt.floor, got, tt.expected)
		}
	}
}

func TestGenderValid(t *testing.T) {
	for _, g := range []Gender{GenderMale, GenderFemale, GenderOther, GenderUnknown} {
		if !g.Valid() {
			t.Errorf("Gender(%q).Valid() = false, want true", g)
		}
	}
	for _, g := range []Gender{"", "male", "NONBINARY"} {
		if Gender(g).Valid() {
			t.Errorf("Gender(%q).Valid() = true, want false", g)
		}
	}
}

func TestRelationshipTypeValid(t *testing.T) {
	for _, rt := range []RelationshipType{RelParentOf, RelSpouseOf, RelSiblingOf} {
		if !rt.Valid() {
			t.Errorf("RelationshipType(%q).Valid() = false, want true", rt)
		}
	}
	for _, rt := range []RelationshipType{"", "CHILD_OF", "parent_of"} {
		if RelationshipType(rt).Valid() {
			t.Errorf("RelationshipType(%q).Valid() = true, want false", rt)
		}
	}
}

func TestSessionIsExpired(t *testing.T) {
	live := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if live.IsExpired() {
		t.Error("Expected future session not expired")
	}

	dead := Session{ExpiresAt: time.Now().Add(-time.Hour)}
	if !dead.IsExpired() {
		t.Error("Expected past session expired")
	}
}
