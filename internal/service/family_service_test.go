package service

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"kinspace/internal/database"
	"kinspace/internal/joincode"
	"kinspace/internal/models"
	"kinspace/internal/repository"
)

type testEnv struct {
	db             *database.DB
	accountRepo    *repository.AccountRepository
	familyService  *FamilyService
	claimService   *ClaimService
	personService  *PersonService
	profileService *ProfileService
	graphService   *GraphService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	familyRepo := repository.NewFamilyRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	personRepo := repository.NewPersonRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	graphRepo := repository.NewGraphRepository(db)

	familyService := NewFamilyService(familyRepo, membershipRepo)

	return &testEnv{
		db:             db,
		accountRepo:    repository.NewAccountRepository(db),
		familyService:  familyService,
		claimService:   NewClaimService(membershipRepo),
		personService:  NewPersonService(personRepo, relationshipRepo, familyService),
		profileService: NewProfileService(profileRepo),
		graphService:   NewGraphService(graphRepo),
	}
}

func (e *testEnv) account(t *testing.T, email string) *models.Account {
	t.Helper()
	account, err := e.accountRepo.CreateAccount(email, "hashedpass", "Test "+email)
	if err != nil {
		t.Fatalf("Failed to create account %s: %v", email, err)
	}
	return account
}

func TestCreateFamilyGeneratesCode(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")

	family, err := env.familyService.CreateFamily(owner.ID, "Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	if len(family.JoinCode) != joincode.Length {
		t.Errorf("JoinCode length = %d, want %d", len(family.JoinCode), joincode.Length)
	}
	for _, c := range family.JoinCode {
		if strings.ContainsRune("0O1I", c) {
			t.Errorf("JoinCode %q contains ambiguous character %q", family.JoinCode, c)
		}
	}

	list, err := env.familyService.ListFamilies(owner.ID)
	if err != nil {
		t.Fatalf("ListFamilies() error = %v", err)
	}
	if len(list) != 1 || list[0].Role != models.RoleOwner {
		t.Errorf("Expected single OWNER membership, got %+v", list)
	}
}

func TestCreateFamilyRejectsBadName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")

	if _, err := env.familyService.CreateFamily(owner.ID, ""); err == nil {
		t.Error("Expected error for empty family name")
	}
	if _, err := env.familyService.CreateFamily(owner.ID, strings.Repeat("x", 100)); err == nil {
		t.Error("Expected error for overlong family name")
	}
}

func TestJoinByCode(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")
	joiner := env.account(t, "joiner@example.com")

	family, err := env.familyService.CreateFamily(owner.ID, "Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	// Codes are matched case-insensitively with surrounding space ignored
	joined, err := env.familyService.JoinByCode(joiner.ID, "  "+strings.ToLower(family.JoinCode)+" ")
	if err != nil {
		t.Fatalf("JoinByCode() error = %v", err)
	}
	if joined.ID != family.ID {
		t.Errorf("Joined family %d, want %d", joined.ID, family.ID)
	}

	members, err := env.familyService.ListMembers(joiner.ID, family.ID)
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Errorf("Expected 2 members, got %d", len(members))
	}

	// Re-joining is a no-op, not an error
	if _, err := env.familyService.JoinByCode(joiner.ID, family.JoinCode); err != nil {
		t.Errorf("Re-join error = %v, want nil", err)
	}
}

func TestJoinByCodeInvalid(t *testing.T) {
	env := newTestEnv(t)
	joiner := env.account(t, "joiner@example.com")

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"too short", "ABC"},
		{"too long", "ABCDEFGHJK"},
		{"well-formed but unknown", "ZZZZ9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.familyService.JoinByCode(joiner.ID, tt.code)
			if !errors.Is(err, ErrInvalidCode) {
				t.Errorf("JoinByCode(%q) error = %v, want ErrInvalidCode", tt.code, err)
			}
		})
	}
}

func TestRenameFamilyOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")
	member := env.account(t, "member@example.com")
	outsider := env.account(t, "outsider@example.com")

	family, _ := env.familyService.CreateFamily(owner.ID, "Smiths")
	if _, err := env.familyService.JoinByCode(member.ID, family.JoinCode); err != nil {
		t.Fatalf("JoinByCode() error = %v", err)
	}

	if _, err := env.familyService.RenameFamily(member.ID, family.ID, "Hijacked"); !errors.Is(err, ErrOwnerOnly) {
		t.Errorf("Member rename error = %v, want ErrOwnerOnly", err)
	}
	if _, err := env.familyService.RenameFamily(outsider.ID, family.ID, "Hijacked"); !errors.Is(err, ErrNotAMember) {
		t.Errorf("Outsider rename error = %v, want ErrNotAMember", err)
	}

	// Failed renames leave the name untouched
	list, err := env.familyService.ListFamilies(owner.ID)
	if err != nil {
		t.Fatalf("ListFamilies() error = %v", err)
	}
	if len(list) != 1 || list[0].Family.Name != "Smiths" {
		t.Errorf("Expected name unchanged after forbidden renames, got %+v", list)
	}

	renamed, err := env.familyService.RenameFamily(owner.ID, family.ID, "Smith-Jones")
	if err != nil {
		t.Fatalf("Owner rename error = %v", err)
	}
	if renamed.Name != "Smith-Jones" {
		t.Errorf("Renamed to %q, want Smith-Jones", renamed.Name)
	}
}

func TestDeleteFamilyOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")
	member := env.account(t, "member@example.com")

	family, _ := env.familyService.CreateFamily(owner.ID, "Smiths")
	if _, err := env.familyService.JoinByCode(member.ID, family.JoinCode); err != nil {
		t.Fatalf("JoinByCode() error = %v", err)
	}

	if err := env.familyService.DeleteFamily(member.ID, family.ID); !errors.Is(err, ErrOwnerOnly) {
		t.Errorf("Member delete error = %v, want ErrOwnerOnly", err)
	}

	if err := env.familyService.DeleteFamily(owner.ID, family.ID); err != nil {
		t.Fatalf("Owner delete error = %v", err)
	}

	if _, err := env.familyService.JoinByCode(member.ID, family.JoinCode); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("Join after delete error = %v, want ErrInvalidCode", err)
	}
}

func TestLeaveFamilyMapsNotAMember(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")
	outsider := env.account(t, "outsider@example.com")

	family, _ := env.familyService.CreateFamily(owner.ID, "Smiths")

	if _, err := env.familyService.LeaveFamily(outsider.ID, family.ID); !errors.Is(err, ErrNotAMember) {
		t.Errorf("LeaveFamily() error = %v, want ErrNotAMember", err)
	}
}

func TestClaimServiceMapping(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")
	rival := env.account(t, "rival@example.com")
	outsider := env.account(t, "outsider@example.com")

	family, _ := env.familyService.CreateFamily(owner.ID, "Smiths")
	if _, err := env.familyService.JoinByCode(rival.ID, family.JoinCode); err != nil {
		t.Fatalf("JoinByCode() error = %v", err)
	}

	person, err := env.personService.CreatePerson(owner.ID, models.PersonInput{
		FamilyID:  family.ID,
		FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("CreatePerson() error = %v", err)
	}

	if _, err := env.claimService.ClaimLink(owner.ID, family.ID, person.ID); err != nil {
		t.Fatalf("ClaimLink() error = %v", err)
	}

	if _, err := env.claimService.ClaimLink(rival.ID, family.ID, person.ID); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("Second claim error = %v, want ErrAlreadyClaimed", err)
	}
	if _, err := env.claimService.ClaimLink(outsider.ID, family.ID, person.ID); !errors.Is(err, ErrNotAMember) {
		t.Errorf("Outsider claim error = %v, want ErrNotAMember", err)
	}
	if _, err := env.claimService.ClaimLink(owner.ID, family.ID, 99999); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("Unknown person claim error = %v, want ErrPersonNotFound", err)
	}
}

func TestPersonServiceRejectsOutsiders(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")
	outsider := env.account(t, "outsider@example.com")

	family, _ := env.familyService.CreateFamily(owner.ID, "Smiths")

	_, err := env.personService.CreatePerson(outsider.ID, models.PersonInput{
		FamilyID:  family.ID,
		FirstName: "Mallory",
	})
	if !errors.Is(err, ErrNotAMember) {
		t.Errorf("CreatePerson() error = %v, want ErrNotAMember", err)
	}
}

func TestAddRelationshipValidatesType(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "owner@example.com")

	family, _ := env.familyService.CreateFamily(owner.ID, "Smiths")
	a, _ := env.personService.CreatePerson(owner.ID, models.PersonInput{FamilyID: family.ID, FirstName: "Alice"})
	b, _ := env.personService.CreatePerson(owner.ID, models.PersonInput{FamilyID: family.ID, FirstName: "Bob"})

	if _, err := env.personService.AddRelationship(owner.ID, family.ID, a.ID, b.ID, "FRENEMY_OF"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("AddRelationship() error = %v, want ErrInvalidInput", err)
	}

	rel, err := env.personService.AddRelationship(owner.ID, family.ID, a.ID, b.ID, models.RelSiblingOf)
	if err != nil {
		t.Fatalf("AddRelationship() error = %v", err)
	}
	if rel.Type != models.RelSiblingOf {
		t.Errorf("rel.Type = %v, want SIBLING_OF", rel.Type)
	}
}
