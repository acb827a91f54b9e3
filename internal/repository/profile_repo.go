package repository

import (
	"database/sql"
	"fmt"

	"kinspace/internal/database"
	"kinspace/internal/models"
)

// ProfileRepository handles database operations for account profiles
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates the account's profile on first write and updates it on
// subsequent writes
func (r *ProfileRepository) Upsert(p *models.Profile) error {
	query := r.db.Dialect.UpsertProfile()
	_, err := r.db.Exec(query,
		p.AccountID, p.FirstName, p.LastName, p.Phone, p.Occupation,
		p.Education, p.BirthDate, p.City, p.Country, p.Bio, p.AllowFamilyView,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetByAccount retrieves an account's profile, or nil if none exists yet
func (r *ProfileRepository) GetByAccount(accountID int64) (*models.Profile, error) {
	query := `
		SELECT id, account_id, first_name, last_name, phone, occupation, education,
		       birth_date, city, country, bio, allow_family_view, updated_at
		FROM profiles
		WHERE account_id = ?
	`
	profile, err := scanProfile(r.db.QueryRow(query, accountID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	p := &models.Profile{}
	var firstName, lastName, phone, occupation, education, city, country, bio sql.NullString
	var birthDate sql.NullTime

	err := row.Scan(
		&p.ID, &p.AccountID, &firstName, &lastName, &phone, &occupation,
		&education, &birthDate, &city, &country, &bio, &p.AllowFamilyView, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if firstName.Valid {
		p.FirstName = &firstName.String
	}
	if lastName.Valid {
		p.LastName = &lastName.String
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if occupation.Valid {
		p.Occupation = &occupation.String
	}
	if education.Valid {
		p.Education = &education.String
	}
	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	if city.Valid {
		p.City = &city.String
	}
	if country.Valid {
		p.Country = &country.String
	}
	if bio.Valid {
		p.Bio = &bio.String
	}
	return p, nil
}
