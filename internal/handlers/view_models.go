package handlers

import (
	"time"

	"kinspace/internal/models"
)

// JSON shapes returned to clients. Nullable columns render as null rather
// than zero values.

type familyJSON struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	JoinCode string `json:"joinCode"`
}

type familyMembershipJSON struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	JoinCode string      `json:"joinCode"`
	Role     models.Role `json:"role"`
	PersonID *int64      `json:"personId"`
}

type memberJSON struct {
	AccountID int64       `json:"accountId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	PersonID  *int64      `json:"personId"`
	JoinedAt  string      `json:"joinedAt"`
}

type personJSON struct {
	ID             int64                  `json:"id"`
	FirstName      string                 `json:"firstName"`
	LastName       *string                `json:"lastName"`
	Gender         models.Gender          `json:"gender"`
	BirthDate      *string                `json:"birthDate"`
	DeathDate      *string                `json:"deathDate"`
	City           *string                `json:"city"`
	Country        *string                `json:"country"`
	Bio            *string                `json:"bio"`
	ClaimedProfile *models.OverlayProfile `json:"claimedProfile,omitempty"`
}

type relationshipJSON struct {
	ID   int64                   `json:"id"`
	AID  int64                   `json:"aId"`
	BID  int64                   `json:"bId"`
	Type models.RelationshipType `json:"type"`
}

type profileJSON struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Phone           *string `json:"phone"`
	Occupation      *string `json:"occupation"`
	Education       *string `json:"education"`
	BirthDate       *string `json:"birthDate"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	Bio             *string `json:"bio"`
	AllowFamilyView bool    `json:"allowFamilyView"`
}

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// parseDate accepts a YYYY-MM-DD string, nil for absent
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toFamilyJSON(f *models.Family) familyJSON {
	return familyJSON{ID: f.ID, Name: f.Name, JoinCode: f.JoinCode}
}

func toFamilyMembershipJSON(fm models.FamilyMembership) familyMembershipJSON {
	return familyMembershipJSON{
		ID:       fm.Family.ID,
		Name:     fm.Family.Name,
		JoinCode: fm.Family.JoinCode,
		Role:     fm.Role,
		PersonID: fm.PersonID,
	}
}

func toMemberJSON(mi models.MemberInfo) memberJSON {
	return memberJSON{
		AccountID: mi.AccountID,
		Name:      mi.AccountName,
		Email:     mi.AccountEmail,
		Role:      mi.Role,
		PersonID:  mi.PersonID,
		JoinedAt:  mi.JoinedAt.Format(time.RFC3339),
	}
}

func toPersonJSON(p models.Person, overlay *models.OverlayProfile) personJSON {
	return personJSON{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Gender:         p.Gender,
		BirthDate:      formatDate(p.BirthDate),
		DeathDate:      formatDate(p.DeathDate),
		City:           p.City,
		Country:        p.Country,
		Bio:            p.Bio,
		ClaimedProfile: overlay,
	}
}

func toRelationshipJSON(r models.Relationship) relationshipJSON {
	return relationshipJSON{ID: r.ID, AID: r.APersonID, BID: r.BPersonID, Type: r.Type}
}

func toProfileJSON(p *models.Profile) profileJSON {
	if p == nil {
		// An account that never saved a profile reads back the defaults
		return profileJSON{AllowFamilyView: true}
	}
	return profileJSON{
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Phone:           p.Phone,
		Occupation:      p.Occupation,
		Education:       p.Education,
		BirthDate:       formatDate(p.BirthDate),
		City:            p.City,
		Country:         p.Country,
		Bio:             p.Bio,
		AllowFamilyView: p.AllowFamilyView,
	}
}
