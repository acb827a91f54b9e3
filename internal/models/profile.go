package models

import "time"

// Profile holds an account's optional personal details. At most one per
// account; AllowFamilyView gates whether these fields appear as an overlay
// on the account's claimed person in the family graph.
type Profile struct {
	ID              int64
	AccountID       int64
	FirstName       *string
	LastName        *string
	Phone           *string
	Occupation      *string
	Education       *string
	BirthDate       *time.Time
	City            *string
	Country         *string
	Bio             *string
	AllowFamilyView bool
	UpdatedAt       time.Time
}

// OverlayProfile is the subset of profile fields exposed to other family
// members through the graph
type OverlayProfile struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Occupation *string `json:"occupation"`
	Education  *string `json:"education"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	Bio        *string `json:"bio"`
}
