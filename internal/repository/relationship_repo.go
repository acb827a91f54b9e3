package repository

import (
	"fmt"
	"time"

	"kinspace/internal/database"
	"kinspace/internal/models"
)

// RelationshipRepository handles database operations for relationship edges
type RelationshipRepository struct {
	db *database.DB
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *database.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// CreateRelationship inserts a directed edge between two persons. Both must
// belong to familyID; duplicate edges are allowed by design.
func (r *RelationshipRepository) CreateRelationship(familyID, aPersonID, bPersonID int64, relType models.RelationshipType) (*models.Relationship, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM persons WHERE family_id = ? AND id IN (?, ?)",
		familyID, aPersonID, bPersonID,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to check persons: %w", err)
	}
	want := 2
	if aPersonID == bPersonID {
		want = 1
	}
	if count != want {
		return nil, ErrPersonNotInFamily
	}

	query := "INSERT INTO relationships (family_id, a_person_id, b_person_id, type) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, aPersonID, bPersonID, relType)
	if err != nil {
		return nil, fmt.Errorf("failed to create relationship: %w", err)
	}

	return &models.Relationship{
		ID:        id,
		FamilyID:  familyID,
		APersonID: aPersonID,
		BPersonID: bPersonID,
		Type:      relType,
		CreatedAt: time.Now(),
	}, nil
}

// ListByFamily retrieves all relationship edges in a family
func (r *RelationshipRepository) ListByFamily(familyID int64) ([]models.Relationship, error) {
	query := `
		SELECT id, family_id, a_person_id, b_person_id, type, created_at
		FROM relationships
		WHERE family_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, familyID)
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
