package repository

import (
	"database/sql"
	"fmt"

	"kinspace/internal/database"
	"kinspace/internal/models"
)

// ClaimRow is one claimed person of a family: the claiming account's email
// and its profile, if any. Profile is nil when the account never saved one.
type ClaimRow struct {
	PersonID     int64
	AccountEmail string
	Profile      *models.Profile
}

// GraphRepository reads the pieces of a family graph. All reads for one
// assembly run inside a single transaction so the overlay is computed from
// the same snapshot as the person and relationship rows.
type GraphRepository struct {
	db *database.DB
}

// NewGraphRepository creates a new graph repository
func NewGraphRepository(db *database.DB) *GraphRepository {
	return &GraphRepository{db: db}
}

// Snapshot reads a family's persons, relationship edges and claim rows in
// one consistent view
func (r *GraphRepository) Snapshot(familyID int64) ([]models.Person, []models.Relationship, []ClaimRow, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	persons, err := readPersons(tx, familyID)
	if err != nil {
		return nil, nil, nil, err
	}

	edges, err := readRelationships(tx, familyID)
	if err != nil {
		return nil, nil, nil, err
	}

	claims, err := readClaims(tx, familyID)
	if err != nil {
		return nil, nil, nil, err
	}

	// Read-only transaction; commit releases the snapshot
	if err := tx.Commit(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return persons, edges, claims, nil
}

func readPersons(tx *database.Tx, familyID int64) ([]models.Person, error) {
	query := "SELECT " + personColumns + " FROM persons WHERE family_id = ? ORDER BY id ASC"
	rows, err := tx.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	return collectPersons(rows)
}

func readRelationships(tx *database.Tx, familyID int64) ([]models.Relationship, error) {
	query := `
		SELECT id, family_id, a_person_id, b_person_id, type, created_at
		FROM relationships
		WHERE family_id = ?
		ORDER BY id ASC
	`
	rows, err := tx.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	var edges []models.Relationship
	for rows.Next() {
		var rel models.Relationship
		if err := rows.Scan(&rel.ID, &rel.FamilyID, &rel.APersonID, &rel.BPersonID, &rel.Type, &rel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan relationship row: %w", err)
		}
		edges = append(edges, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate relationship rows: %w", err)
	}
	return edges, nil
}

// readClaims joins the family's claimed memberships to their accounts and,
// where present, profiles
func readClaims(tx *database.Tx, familyID int64) ([]ClaimRow, error) {
	query := `
		SELECT m.person_id, a.email,
		       p.id, p.account_id, p.first_name, p.last_name, p.phone, p.occupation,
		       p.education, p.birth_date, p.city, p.country, p.bio, p.allow_family_view, p.updated_at
		FROM memberships m
		INNER JOIN accounts a ON m.account_id = a.id
		LEFT JOIN profiles p ON p.account_id = m.account_id
		WHERE m.family_id = ? AND m.person_id IS NOT NULL
	`
	rows, err := tx.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer rows.Close()

	var claims []ClaimRow
	for rows.Next() {
		var cr ClaimRow
		var profileID, profileAccountID sql.NullInt64
		var firstName, lastName, phone, occupation, education, city, country, bio sql.NullString
		var birthDate, updatedAt sql.NullTime
		var allowFamilyView sql.NullBool

		if err := rows.Scan(
			&cr.PersonID, &cr.AccountEmail,
			&profileID, &profileAccountID, &firstName, &lastName, &phone, &occupation,
			&education, &birthDate, &city, &country, &bio, &allowFamilyView, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan claim row: %w", err)
		}

		if profileID.Valid {
			p := &models.Profile{
				ID:              profileID.Int64,
				AccountID:       profileAccountID.Int64,
				AllowFamilyView: allowFamilyView.Bool,
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
			if updatedAt.Valid {
				p.UpdatedAt = updatedAt.Time
			}
			cr.Profile = p
		}

		claims = append(claims, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claim rows: %w", err)
	}

	return claims, nil
}
