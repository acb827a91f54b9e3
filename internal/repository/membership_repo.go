package repository

import (
	"database/sql"
	"fmt"

	"kinspace/internal/database"
	"kinspace/internal/models"
)

// MembershipRepository handles membership rows and the identity-claim
// protocol that binds a membership to a person node
type MembershipRepository struct {
	db *database.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *database.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// GetMembership retrieves an account's membership in a family
func (r *MembershipRepository) GetMembership(accountID, familyID int64) (*models.Membership, error) {
	query := `
		SELECT id, family_id, account_id, role, person_id, created_at
		FROM memberships
		WHERE account_id = ? AND family_id = ?
	`
	m := &models.Membership{}
	var personID sql.NullInt64
	err := r.db.QueryRow(query, accountID, familyID).Scan(
		&m.ID, &m.FamilyID, &m.AccountID, &m.Role, &personID, &m.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	if personID.Valid {
		m.PersonID = &personID.Int64
	}
	return m, nil
}

// AddMember inserts a membership row. Inserting a pair that already exists
// is a no-op, which makes concurrent double-joins converge to one row.
func (r *MembershipRepository) AddMember(familyID, accountID int64, role models.Role) error {
	query := r.db.Dialect.InsertIgnoreMembership()
	if _, err := r.db.Exec(query, familyID, accountID, role); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// ListMembers retrieves all members of a family with their account details,
// longest-tenured first
func (r *MembershipRepository) ListMembers(familyID int64) ([]models.MemberInfo, error) {
	query := `
		SELECT m.id, m.account_id, a.name, a.email, m.role, m.person_id, m.created_at
		FROM memberships m
		INNER JOIN accounts a ON m.account_id = a.id
		WHERE m.family_id = ?
		ORDER BY m.created_at ASC, m.id ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []models.MemberInfo
	for rows.Next() {
		var mi models.MemberInfo
		var personID sql.NullInt64
		if err := rows.Scan(
			&mi.MembershipID, &mi.AccountID, &mi.AccountName, &mi.AccountEmail,
			&mi.Role, &personID, &mi.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		if personID.Valid {
			mi.PersonID = &personID.Int64
		}
		members = append(members, mi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member rows: %w", err)
	}

	return members, nil
}

// ClaimLink binds the caller's membership to an existing person. The person
// must belong to the family, and the unique constraint on person_id makes
// concurrent claims of the same person race safely: one binds, the other
// gets ErrPersonAlreadyClaimed.
func (r *MembershipRepository) ClaimLink(accountID, familyID, personID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var personFamilyID int64
	err = tx.QueryRow("SELECT family_id FROM persons WHERE id = ?", personID).Scan(&personFamilyID)
	if err == sql.ErrNoRows {
		return ErrPersonNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get person: %w", err)
	}
	if personFamilyID != familyID {
		return ErrPersonNotInFamily
	}

	if err := bindPerson(tx, accountID, familyID, personID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClaimCreate inserts a new person and binds it to the caller's membership
// in one transaction; a bind failure leaves no orphan person behind
func (r *MembershipRepository) ClaimCreate(accountID, familyID int64, firstName string, lastName *string) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO persons (family_id, first_name, last_name, gender) VALUES (?, ?, ?, ?)"
	personID, err := tx.ExecReturningID(query, familyID, firstName, lastName, models.GenderUnknown)
	if err != nil {
		return 0, fmt.Errorf("failed to create person: %w", err)
	}

	if err := bindPerson(tx, accountID, familyID, personID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return personID, nil
}

// bindPerson points the caller's membership at personID
func bindPerson(tx *database.Tx, accountID, familyID, personID int64) error {
	var membershipID int64
	err := tx.QueryRow(
		"SELECT id FROM memberships WHERE account_id = ? AND family_id = ?",
		accountID, familyID,
	).Scan(&membershipID)
	if err == sql.ErrNoRows {
		return ErrMembershipNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	_, err = tx.Exec("UPDATE memberships SET person_id = ? WHERE id = ?", personID, membershipID)
	if err != nil {
		if tx.GetDialect().IsUniqueViolation(err) {
			return ErrPersonAlreadyClaimed
		}
		return fmt.Errorf("failed to bind person: %w", err)
	}
	return nil
}
