package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"kinspace/internal/models"
	"kinspace/internal/service"
)

// FamilyHandler handles family lifecycle, membership and graph requests
type FamilyHandler struct {
	familyService *service.FamilyService
	graphService  *service.GraphService
	emailService  *service.EmailService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService, graphService *service.GraphService, emailService *service.EmailService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
		graphService:  graphService,
		emailService:  emailService,
	}
}

// List returns the caller's families with role and claimed person
func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	list, err := h.familyService.ListFamilies(account.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	families := make([]familyMembershipJSON, 0, len(list))
	for _, fm := range list {
		families = append(families, toFamilyMembershipJSON(fm))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"families": families})
}

type createFamilyRequest struct {
	Name string `json:"name"`
}

// Create creates a family with the caller as OWNER
func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	var req createFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	family, err := h.familyService.CreateFamily(account.ID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Family created",
		"family":  toFamilyJSON(family),
	})
}

type joinFamilyRequest struct {
	Code string `json:"code"`
}

// Join adds the caller to a family by join code
func (h *FamilyHandler) Join(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	var req joinFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	family, err := h.familyService.JoinByCode(account.ID, req.Code)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Joined family",
		"family":  toFamilyJSON(family),
	})
}

type renameFamilyRequest struct {
	Name string `json:"name"`
}

// Rename renames a family. OWNER only.
func (h *FamilyHandler) Rename(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req renameFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	family, err := h.familyService.RenameFamily(account.ID, familyID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Family renamed",
		"family":  toFamilyJSON(family),
	})
}

// Remove leaves the family, or with ?hard=true deletes it outright (OWNER
// only). Leaving as the last member deletes the family; leaving as OWNER
// hands ownership to the longest-tenured remaining member.
func (h *FamilyHandler) Remove(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if r.URL.Query().Get("hard") == "true" {
		if err := h.familyService.DeleteFamily(account.ID, familyID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Family deleted"})
		return
	}

	result, err := h.familyService.LeaveFamily(account.ID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	message := "Left family"
	switch {
	case result.DeletedFamily:
		message = "Left family; the empty family was deleted"
	case result.Transferred:
		message = "Left family; ownership was transferred"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       message,
		"deletedFamily": result.DeletedFamily,
		"transferred":   result.Transferred,
	})
}

// Members lists the family's members. Caller must be a member.
func (h *FamilyHandler) Members(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.familyService.ListMembers(account.ID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	members := make([]memberJSON, 0, len(list))
	for _, mi := range list {
		members = append(members, toMemberJSON(mi))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

type inviteRequest struct {
	Email string `json:"email"`
}

// Invite emails the family's join code to an address. Caller must be a
// member.
func (h *FamilyHandler) Invite(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Membership check doubles as the family lookup
	list, err := h.familyService.ListFamilies(account.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var family *models.Family
	for i := range list {
		if list[i].Family.ID == familyID {
			family = &list[i].Family
			break
		}
	}
	if family == nil {
		respondServiceError(w, service.ErrNotAMember)
		return
	}

	if err := h.emailService.SendJoinInvite(r.Context(), req.Email, account.Name, family.Name, family.JoinCode); err != nil {
		log.Printf("Error sending invite: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to send invite")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Invite sent"})
}

// Graph returns the family's relationship graph with profile overlays.
// Caller must be a member; the graph itself does no further gating beyond
// each profile's allow-family-view flag.
func (h *FamilyHandler) Graph(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.familyService.VerifyMembership(account.ID, familyID); err != nil {
		respondServiceError(w, err)
		return
	}

	graph, err := h.graphService.FamilyGraph(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	people := make([]personJSON, 0, len(graph.People))
	for _, gp := range graph.People {
		people = append(people, toPersonJSON(gp.Person, gp.ClaimedProfile))
	}
	relationships := make([]relationshipJSON, 0, len(graph.Relationships))
	for _, rel := range graph.Relationships {
		relationships = append(relationships, toRelationshipJSON(rel))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"people":        people,
		"relationships": relationships,
	})
}

// pathID parses a positive integer path value; on failure it writes a 400
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
