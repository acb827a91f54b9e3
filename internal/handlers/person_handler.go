package handlers

import (
	"encoding/json"
	"net/http"

	"kinspace/internal/models"
	"kinspace/internal/service"
)

// PersonHandler handles person and relationship creation
type PersonHandler struct {
	personService *service.PersonService
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(personService *service.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

type createPersonRequest struct {
	FamilyID  int64         `json:"familyId"`
	FirstName string        `json:"firstName"`
	LastName  *string       `json:"lastName"`
	Gender    models.Gender `json:"gender"`
	BirthDate *string       `json:"birthDate"`
	DeathDate *string       `json:"deathDate"`
	City      *string       `json:"city"`
	Country   *string       `json:"country"`
	Bio       *string       `json:"bio"`
}

// Create adds a person node to a family
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FamilyID <= 0 {
		respondError(w, http.StatusBadRequest, "familyId is required")
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
		return
	}
	deathDate, err := parseDate(req.DeathDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "deathDate must be YYYY-MM-DD")
		return
	}

	person, err := h.personService.CreatePerson(account.ID, models.PersonInput{
		FamilyID:  req.FamilyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		BirthDate: birthDate,
		DeathDate: deathDate,
		City:      req.City,
		Country:   req.Country,
		Bio:       req.Bio,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Person added",
		"person":  toPersonJSON(*person, nil),
	})
}

type createRelationshipRequest struct {
	FamilyID int64                   `json:"familyId"`
	AID      int64                   `json:"aId"`
	BID      int64                   `json:"bId"`
	Type     models.RelationshipType `json:"type"`
}

// CreateRelationship adds a typed edge between two persons
func (h *PersonHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	var req createRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FamilyID <= 0 || req.AID <= 0 || req.BID <= 0 {
		respondError(w, http.StatusBadRequest, "familyId, aId and bId are required")
		return
	}

	rel, err := h.personService.AddRelationship(account.ID, req.FamilyID, req.AID, req.BID, req.Type)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Relationship added",
		"relationship": toRelationshipJSON(*rel),
	})
}
