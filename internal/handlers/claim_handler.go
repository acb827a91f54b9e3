package handlers

import (
	"encoding/json"
	"net/http"

	"kinspace/internal/service"
)

// ClaimHandler handles binding memberships to person nodes
type ClaimHandler struct {
	claimService *service.ClaimService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(claimService *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

type claimRequest struct {
	Mode     string `json:"mode"`
	FamilyID int64  `json:"familyId"`

	// link mode
	PersonID int64 `json:"personId"`

	// create mode
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Claim binds the caller's membership to a person: mode "link" points at an
// existing person, mode "create" makes a new one
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FamilyID <= 0 {
		respondError(w, http.StatusBadRequest, "familyId is required")
		return
	}

	switch req.Mode {
	case "link":
		if req.PersonID <= 0 {
			respondError(w, http.StatusBadRequest, "personId is required for link mode")
			return
		}
		personID, err := h.claimService.ClaimLink(account.ID, req.FamilyID, req.PersonID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Linked to existing person",
			"personId": personID,
		})

	case "create":
		personID, err := h.claimService.ClaimCreate(account.ID, req.FamilyID, req.FirstName, req.LastName)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Created and linked person",
			"personId": personID,
		})

	default:
		respondError(w, http.StatusBadRequest, "mode must be 'link' or 'create'")
	}
}
