package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kinspace/internal/database"
	"kinspace/internal/models"
)

// PersonRepository handles database operations for person nodes
type PersonRepository struct {
	db *database.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *database.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

const personColumns = "id, family_id, first_name, last_name, gender, birth_date, death_date, city, country, bio, created_at"

// CreatePerson inserts a new person node
func (r *PersonRepository) CreatePerson(input models.PersonInput) (*models.Person, error) {
	gender := input.Gender
	if gender == "" {
		gender = models.GenderUnknown
	}

	query := `
		INSERT INTO persons (family_id, first_name, last_name, gender, birth_date, death_date, city, country, bio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		input.FamilyID, input.FirstName, input.LastName, gender,
		input.BirthDate, input.DeathDate, input.City, input.Country, input.Bio,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	return &models.Person{
		ID:        id,
		FamilyID:  input.FamilyID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Gender:    gender,
		BirthDate: input.BirthDate,
		DeathDate: input.DeathDate,
		City:      input.City,
		Country:   input.Country,
		Bio:       input.Bio,
		CreatedAt: time.Now(),
	}, nil
}

// GetPersonByID retrieves a person by ID
func (r *PersonRepository) GetPersonByID(personID int64) (*models.Person, error) {
	query := "SELECT " + personColumns + " FROM persons WHERE id = ?"
	person, err := scanPerson(r.db.QueryRow(query, personID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListByFamily retrieves all persons in a family, oldest row first
func (r *PersonRepository) ListByFamily(familyID int64) ([]models.Person, error) {
	query := "SELECT " + personColumns + " FROM persons WHERE family_id = ? ORDER BY id ASC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	return collectPersons(rows)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	p := &models.Person{}
	var lastName, city, country, bio sql.NullString
	var birthDate, deathDate sql.NullTime

	err := row.Scan(
		&p.ID, &p.FamilyID, &p.FirstName, &lastName, &p.Gender,
		&birthDate, &deathDate, &city, &country, &bio, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastName.Valid {
		p.LastName = &lastName.String
	}
	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	if deathDate.Valid {
		p.DeathDate = &deathDate.Time
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

func collectPersons(rows *sql.Rows) ([]models.Person, error) {
	var persons []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate person rows: %w", err)
	}
	return persons, nil
}
