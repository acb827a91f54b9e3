package service

import (
	"errors"
	"fmt"

	"kinspace/internal/joincode"
	"kinspace/internal/models"
	"kinspace/internal/repository"
	"kinspace/internal/validation"
)

var (
	ErrFamilyNotFound = errors.New("family not found")
	ErrNotAMember     = errors.New("not a member of this family")
	ErrOwnerOnly      = errors.New("owner role required")
	ErrInvalidCode    = errors.New("invalid join code")
)

// maxCodeAttempts bounds join-code regeneration on collision. With 32^8
// possible codes, exhausting this means something is badly wrong.
const maxCodeAttempts = 10

// FamilyService handles family and membership business logic
type FamilyService struct {
	familyRepo     *repository.FamilyRepository
	membershipRepo *repository.MembershipRepository
}

// NewFamilyService creates a new family service
func NewFamilyService(familyRepo *repository.FamilyRepository, membershipRepo *repository.MembershipRepository) *FamilyService {
	return &FamilyService{
		familyRepo:     familyRepo,
		membershipRepo: membershipRepo,
	}
}

// CreateFamily creates a new family with the caller as OWNER. Join codes
// are generated fresh and retried on collision.
func (s *FamilyService) CreateFamily(accountID int64, name string) (*models.Family, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := joincode.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}

		family, err := s.familyRepo.CreateFamilyWithOwner(name, code, accountID)
		if errors.Is(err, repository.ErrJoinCodeTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create family: %w", err)
		}
		return family, nil
	}

	return nil, fmt.Errorf("failed to create family: exhausted %d join code attempts", maxCodeAttempts)
}

// ListFamilies retrieves all families an account belongs to, with the
// account's role and claimed person in each
func (s *FamilyService) ListFamilies(accountID int64) ([]models.FamilyMembership, error) {
	list, err := s.familyRepo.ListForAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return list, nil
}

// JoinByCode adds the caller to the family behind the code as MEMBER.
// Joining a family the caller already belongs to is a no-op.
func (s *FamilyService) JoinByCode(accountID int64, code string) (*models.Family, error) {
	code = joincode.Normalize(code)
	if err := validation.ValidateJoinCode(code); err != nil {
		return nil, ErrInvalidCode
	}

	family, err := s.familyRepo.GetFamilyByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up join code: %w", err)
	}
	if family == nil {
		return nil, ErrInvalidCode
	}

	if err := s.membershipRepo.AddMember(family.ID, accountID, models.RoleMember); err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	return family, nil
}

// RenameFamily renames a family. OWNER only.
func (s *FamilyService) RenameFamily(accountID, familyID int64, name string) (*models.Family, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	if err := s.requireOwner(accountID, familyID); err != nil {
		return nil, err
	}

	if err := s.familyRepo.Rename(familyID, name); err != nil {
		return nil, fmt.Errorf("failed to rename family: %w", err)
	}

	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	return family, nil
}

// DeleteFamily removes a family and everything in it. OWNER only,
// irreversible.
func (s *FamilyService) DeleteFamily(accountID, familyID int64) error {
	if err := s.requireOwner(accountID, familyID); err != nil {
		return err
	}

	if err := s.familyRepo.Delete(familyID); err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}
	return nil
}

// LeaveFamily removes the caller's membership, transferring ownership or
// deleting the family as the leave protocol dictates
func (s *FamilyService) LeaveFamily(accountID, familyID int64) (*models.LeaveResult, error) {
	result, err := s.familyRepo.Leave(accountID, familyID)
	if errors.Is(err, repository.ErrMembershipNotFound) {
		return nil, ErrNotAMember
	}
	if err != nil {
		// ErrNoSuccessor lands here too: it is an internal consistency
		// failure, not a user mistake
		return nil, fmt.Errorf("failed to leave family: %w", err)
	}
	return result, nil
}

// ListMembers retrieves a family's members. Caller must be a member.
func (s *FamilyService) ListMembers(accountID, familyID int64) ([]models.MemberInfo, error) {
	if _, err := s.VerifyMembership(accountID, familyID); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListMembers(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// VerifyMembership returns the caller's membership in the family, or
// ErrNotAMember. Shared by every operation gated on membership.
func (s *FamilyService) VerifyMembership(accountID, familyID int64) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetMembership(accountID, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if membership == nil {
		return nil, ErrNotAMember
	}
	return membership, nil
}

// requireOwner is the single role gate for owner-only operations
func (s *FamilyService) requireOwner(accountID, familyID int64) error {
	membership, err := s.VerifyMembership(accountID, familyID)
	if err != nil {
		return err
	}
	if !membership.Role.AtLeast(models.RoleOwner) {
		return ErrOwnerOnly
	}
	return nil
}
