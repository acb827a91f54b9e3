package service

import (
	"errors"
	"fmt"

	"kinspace/internal/repository"
	"kinspace/internal/validation"
)

var (
	ErrAlreadyClaimed    = errors.New("person already claimed by another member")
	ErrPersonNotFound    = errors.New("person not found")
	ErrPersonNotInFamily = errors.New("person belongs to a different family")
)

// ClaimService binds memberships to person nodes ("this person is me")
type ClaimService struct {
	membershipRepo *repository.MembershipRepository
}

// NewClaimService creates a new claim service
func NewClaimService(membershipRepo *repository.MembershipRepository) *ClaimService {
	return &ClaimService{membershipRepo: membershipRepo}
}

// ClaimLink binds the caller's membership to an existing person in the family
func (s *ClaimService) ClaimLink(accountID, familyID, personID int64) (int64, error) {
	err := s.membershipRepo.ClaimLink(accountID, familyID, personID)
	if err != nil {
		return 0, mapClaimError(err)
	}
	return personID, nil
}

// ClaimCreate creates a new person carrying the caller's name and binds it
// to the caller's membership
func (s *ClaimService) ClaimCreate(accountID, familyID int64, firstName string, lastName *string) (int64, error) {
	if err := validation.ValidateName(firstName); err != nil {
		return 0, err
	}

	personID, err := s.membershipRepo.ClaimCreate(accountID, familyID, firstName, lastName)
	if err != nil {
		return 0, mapClaimError(err)
	}
	return personID, nil
}

func mapClaimError(err error) error {
	switch {
	case errors.Is(err, repository.ErrPersonNotFound):
		return ErrPersonNotFound
	case errors.Is(err, repository.ErrPersonNotInFamily):
		return ErrPersonNotInFamily
	case errors.Is(err, repository.ErrPersonAlreadyClaimed):
		return ErrAlreadyClaimed
	case errors.Is(err, repository.ErrMembershipNotFound):
		return ErrNotAMember
	default:
		return fmt.Errorf("failed to claim person: %w", err)
	}
}
