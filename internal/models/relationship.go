package models

import "time"

// RelationshipType is the type of a directed edge between two persons
type RelationshipType string

const (
	RelParentOf  RelationshipType = "PARENT_OF"
	RelSpouseOf  RelationshipType = "SPOUSE_OF"
	RelSiblingOf RelationshipType = "SIBLING_OF"
)

// Valid reports whether t is one of the known relationship types
func (t RelationshipType) Valid() bool {
	switch t {
	case RelParentOf, RelSpouseOf, RelSiblingOf:
		return true
	}
	return false
}

// Relationship is a directed, typed edge between two persons of the same
// family. Duplicate edges and one-sided SPOUSE_OF edges are permitted.
type Relationship struct {
	ID        int64
	FamilyID  int64
	APersonID int64
	BPersonID int64
	Type      RelationshipType
	CreatedAt time.Time
}
