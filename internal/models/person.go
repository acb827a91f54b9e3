package models

import "time"

// Gender of a person node
type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderOther   Gender = "OTHER"
	GenderUnknown Gender = "UNKNOWN"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

// Person is a node in a family's relationship graph. Persons exist
// independently of accounts: ancestors, children and unclaimed relatives
// are all persons without a claiming membership.
type Person struct {
	ID        int64
	FamilyID  int64
	FirstName string
	LastName  *string
	Gender    Gender
	BirthDate *time.Time
	DeathDate *time.Time
	City      *string
	Country   *string
	Bio       *string
	CreatedAt time.Time
}

// PersonInput carries the writable fields for creating a person
type PersonInput struct {
	FamilyID  int64
	FirstName string
	LastName  *string
	Gender    Gender
	BirthDate *time.Time
	DeathDate *time.Time
	City      *string
	Country   *string
	Bio       *string
}
