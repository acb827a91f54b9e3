package service

import (
	"fmt"

	"kinspace/internal/models"
	"kinspace/internal/repository"
)

// GraphService assembles a family's relationship graph, overlaying each
// claimed person with the claiming account's profile when that account
// allows family viewing. Authorization happens before this service is
// called; it is not an access-control boundary itself.
type GraphService struct {
	graphRepo *repository.GraphRepository
}

// NewGraphService creates a new graph service
func NewGraphService(graphRepo *repository.GraphRepository) *GraphService {
	return &GraphService{graphRepo: graphRepo}
}

// FamilyGraph returns a consistent snapshot of the family's persons and
// relationship edges. Persons claimed by an account whose profile has
// allow_family_view set carry that profile as an overlay; the overlay never
// replaces the person's own stored fields.
func (s *GraphService) FamilyGraph(familyID int64) (*models.FamilyGraph, error) {
	persons, edges, claims, err := s.graphRepo.Snapshot(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to read family graph: %w", err)
	}

	overlays := make(map[int64]*models.OverlayProfile)
	for _, claim := range claims {
		// No profile, or a profile hidden from the family, contributes
		// nothing
		if claim.Profile == nil || !claim.Profile.AllowFamilyView {
			continue
		}
		email := claim.AccountEmail
		overlays[claim.PersonID] = &models.OverlayProfile{
			FirstName:  claim.Profile.FirstName,
			LastName:   claim.Profile.LastName,
			Email:      &email,
			Phone:      claim.Profile.Phone,
			Occupation: claim.Profile.Occupation,
			Education:  claim.Profile.Education,
			City:       claim.Profile.City,
			Country:    claim.Profile.Country,
			Bio:        claim.Profile.Bio,
		}
	}

	people := make([]models.GraphPerson, 0, len(persons))
	for _, p := range persons {
		people = append(people, models.GraphPerson{
			Person:         p,
			ClaimedProfile: overlays[p.ID],
		})
	}

	return &models.FamilyGraph{
		People:        people,
		Relationships: edges,
	}, nil
}
