package service

import (
	"fmt"
	"time"

	"kinspace/internal/models"
	"kinspace/internal/repository"
)

// ProfileInput carries the writable profile fields. AllowFamilyView is a
// tri-state: nil keeps the stored value (true for a first write).
type ProfileInput struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	Occupation      *string
	Education       *string
	BirthDate       *time.Time
	City            *string
	Country         *string
	Bio             *string
	AllowFamilyView *bool
}

// ProfileService manages each account's single profile
type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Get retrieves the account's profile, or nil if none has been saved yet
func (s *ProfileService) Get(accountID int64) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Save upserts the account's profile: the first write creates it,
// subsequent writes replace its fields
func (s *ProfileService) Save(accountID int64, input ProfileInput) (*models.Profile, error) {
	allowFamilyView := true
	if input.AllowFamilyView != nil {
		allowFamilyView = *input.AllowFamilyView
	} else {
		existing, err := s.profileRepo.GetByAccount(accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		if existing != nil {
			allowFamilyView = existing.AllowFamilyView
		}
	}

	profile := &models.Profile{
		AccountID:       accountID,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		Occupation:      input.Occupation,
		Education:       input.Education,
		BirthDate:       input.BirthDate,
		City:            input.City,
		Country:         input.Country,
		Bio:             input.Bio,
		AllowFamilyView: allowFamilyView,
	}

	if err := s.profileRepo.Upsert(profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	saved, err := s.profileRepo.GetByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	return saved, nil
}
