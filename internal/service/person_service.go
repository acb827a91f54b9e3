package service

import (
	"errors"
	"fmt"

	"kinspace/internal/models"
	"kinspace/internal/repository"
	"kinspace/internal/validation"
)

var ErrInvalidInput = errors.New("invalid input")

// PersonService manages person nodes and the relationship edges between them
type PersonService struct {
	personRepo       *repository.PersonRepository
	relationshipRepo *repository.RelationshipRepository
	familyService    *FamilyService
}

// NewPersonService creates a new person service
func NewPersonService(personRepo *repository.PersonRepository, relationshipRepo *repository.RelationshipRepository, familyService *FamilyService) *PersonService {
	return &PersonService{
		personRepo:       personRepo,
		relationshipRepo: relationshipRepo,
		familyService:    familyService,
	}
}

// CreatePerson adds a person node to a family the caller belongs to.
// Persons created this way are unclaimed: ancestors, children, relatives
// without an account.
func (s *PersonService) CreatePerson(accountID int64, input models.PersonInput) (*models.Person, error) {
	if _, err := s.familyService.VerifyMembership(accountID, input.FamilyID); err != nil {
		return nil, err
	}

	if err := validation.ValidateName(input.FirstName); err != nil {
		return nil, err
	}
	if input.Gender != "" && !input.Gender.Valid() {
		return nil, fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, input.Gender)
	}

	person, err := s.personRepo.CreatePerson(input)
	if err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	return person, nil
}

// AddRelationship adds a typed directed edge between two persons of a
// family the caller belongs to
func (s *PersonService) AddRelationship(accountID, familyID, aPersonID, bPersonID int64, relType models.RelationshipType) (*models.Relationship, error) {
	if _, err := s.familyService.VerifyMembership(accountID, familyID); err != nil {
		return nil, err
	}

	if !relType.Valid() {
		return nil, fmt.Errorf("%w: unknown relationship type %q", ErrInvalidInput, relType)
	}

	rel, err := s.relationshipRepo.CreateRelationship(familyID, aPersonID, bPersonID, relType)
	if errors.Is(err, repository.ErrPersonNotInFamily) {
		return nil, ErrPersonNotInFamily
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create relationship: %w", err)
	}
	return rel, nil
}

// GetPerson retrieves a person the caller is allowed to see
func (s *PersonService) GetPerson(accountID, personID int64) (*models.Person, error) {
	person, err := s.personRepo.GetPersonByID(personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}

	if _, err := s.familyService.VerifyMembership(accountID, person.FamilyID); err != nil {
		return nil, err
	}
	return person, nil
}
