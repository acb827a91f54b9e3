package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kinspace/internal/database"
	"kinspace/internal/models"
)

// FamilyRepository handles database operations for families and the
// membership protocols that must run atomically against them
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// CreateFamilyWithOwner creates a family under the given join code and adds
// the creator as OWNER, atomically. A join-code collision rolls the whole
// transaction back and returns ErrJoinCodeTaken so the caller can retry with
// a fresh code. The owner insert ignores conflicts: re-running the creation
// for an existing (account, family) pair is a no-op, not an error.
func (r *FamilyRepository) CreateFamilyWithOwner(name, joinCode string, ownerAccountID int64) (*models.Family, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO families (name, join_code) VALUES (?, ?)"
	familyID, err := tx.ExecReturningID(query, name, joinCode)
	if err != nil {
		if r.db.Dialect.IsUniqueViolation(err) {
			return nil, ErrJoinCodeTaken
		}
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	query = r.db.Dialect.InsertIgnoreMembership()
	if _, err := tx.Exec(query, familyID, ownerAccountID, models.RoleOwner); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Family{
		ID:        familyID,
		Name:      name,
		JoinCode:  joinCode,
		CreatedAt: time.Now(),
	}, nil
}

// GetFamilyByID retrieves a family by ID
func (r *FamilyRepository) GetFamilyByID(familyID int64) (*models.Family, error) {
	query := "SELECT id, name, join_code, created_at FROM families WHERE id = ?"
	family := &models.Family{}
	err := r.db.QueryRow(query, familyID).Scan(
		&family.ID,
		&family.Name,
		&family.JoinCode,
		&family.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}

// GetFamilyByCode retrieves a family by its join code. The caller
// normalizes the code first.
func (r *FamilyRepository) GetFamilyByCode(joinCode string) (*models.Family, error) {
	query := "SELECT id, name, join_code, created_at FROM families WHERE join_code = ?"
	family := &models.Family{}
	err := r.db.QueryRow(query, joinCode).Scan(
		&family.ID,
		&family.Name,
		&family.JoinCode,
		&family.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family by code: %w", err)
	}

	return family, nil
}

// ListForAccount retrieves all families an account belongs to, with the
// account's role and claimed person in each, ordered by family name
func (r *FamilyRepository) ListForAccount(accountID int64) ([]models.FamilyMembership, error) {
	query := `
		SELECT f.id, f.name, f.join_code, f.created_at, m.role, m.person_id
		FROM memberships m
		INNER JOIN families f ON m.family_id = f.id
		WHERE m.account_id = ?
		ORDER BY f.name ASC
	`
	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query families: %w", err)
	}
	defer rows.Close()

	var list []models.FamilyMembership
	for rows.Next() {
		var fm models.FamilyMembership
		var personID sql.NullInt64
		if err := rows.Scan(
			&fm.Family.ID, &fm.Family.Name, &fm.Family.JoinCode, &fm.Family.CreatedAt,
			&fm.Role, &personID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan family row: %w", err)
		}
		if personID.Valid {
			fm.PersonID = &personID.Int64
		}
		list = append(list, fm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate family rows: %w", err)
	}

	return list, nil
}

// Rename updates a family's display name
func (r *FamilyRepository) Rename(familyID int64, name string) error {
	query := "UPDATE families SET name = ? WHERE id = ?"
	if _, err := r.db.Exec(query, name, familyID); err != nil {
		return fmt.Errorf("failed to rename family: %w", err)
	}
	return nil
}

// Delete removes a family; memberships, persons and relationships cascade
func (r *FamilyRepository) Delete(familyID int64) error {
	query := "DELETE FROM families WHERE id = ?"
	if _, err := r.db.Exec(query, familyID); err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}
	return nil
}

// Leave executes the leave/transfer protocol in one transaction:
//   - last member leaving deletes the family (cascade removes the membership)
//   - an OWNER leaving promotes the longest-tenured remaining member first
//   - anyone else just loses their membership
//
// The family row is locked for the duration so two concurrent leaves cannot
// both pick a stale successor or leave the family ownerless.
func (r *FamilyRepository) Leave(accountID, familyID int64) (*models.LeaveResult, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lock := r.db.Dialect.RowLockSuffix()

	// Serialize concurrent leave/transfer calls on this family
	var lockedID int64
	err = tx.QueryRow("SELECT id FROM families WHERE id = ?"+lock, familyID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock family: %w", err)
	}

	var membershipID int64
	var role models.Role
	err = tx.QueryRow(
		"SELECT id, role FROM memberships WHERE account_id = ? AND family_id = ?"+lock,
		accountID, familyID,
	).Scan(&membershipID, &role)
	if err == sql.ErrNoRows {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	var total int
	err = tx.QueryRow("SELECT COUNT(*) FROM memberships WHERE family_id = ?", familyID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	// Last member out deletes the family entirely
	if total == 1 {
		if _, err := tx.Exec("DELETE FROM families WHERE id = ?", familyID); err != nil {
			return nil, fmt.Errorf("failed to delete family: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &models.LeaveResult{DeletedFamily: true}, nil
	}

	transferred := false
	if role == models.RoleOwner {
		// Successor is the longest-tenured remaining member, membership id
		// breaking created_at ties
		var successorID int64
		err = tx.QueryRow(`
			SELECT id FROM memberships
			WHERE family_id = ? AND id <> ?
			ORDER BY created_at ASC, id ASC
			LIMIT 1`+lock,
			familyID, membershipID,
		).Scan(&successorID)
		if err == sql.ErrNoRows {
			// Count said others remain; reaching here means concurrency
			// control is broken
			return nil, ErrNoSuccessor
		}
		if err != nil {
			return nil, fmt.Errorf("failed to select successor: %w", err)
		}

		if _, err := tx.Exec("UPDATE memberships SET role = ? WHERE id = ?", models.RoleOwner, successorID); err != nil {
			return nil, fmt.Errorf("failed to promote successor: %w", err)
		}
		transferred = true
	}

	if _, err := tx.Exec("DELETE FROM memberships WHERE id = ?", membershipID); err != nil {
		return nil, fmt.Errorf("failed to remove membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.LeaveResult{Transferred: transferred}, nil
}
