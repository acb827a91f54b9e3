package handlers

import (
	"encoding/json"
	"net/http"

	"kinspace/internal/service"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the caller's profile, defaults when nothing saved yet
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	profile, err := h.profileService.Get(account.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile": toProfileJSON(profile),
	})
}

type saveProfileRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Phone           *string `json:"phone"`
	Occupation      *string `json:"occupation"`
	Education       *string `json:"education"`
	BirthDate       *string `json:"birthDate"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	Bio             *string `json:"bio"`
	AllowFamilyView *bool   `json:"allowFamilyView"`
}

// Save upserts the caller's profile
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())

	var req saveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
		return
	}

	profile, err := h.profileService.Save(account.ID, service.ProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Occupation:      req.Occupation,
		Education:       req.Education,
		BirthDate:       birthDate,
		City:            req.City,
		Country:         req.Country,
		Bio:             req.Bio,
		AllowFamilyView: req.AllowFamilyView,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile saved",
		"profile": toProfileJSON(profile),
	})
}
