package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kinspace/internal/service"
	"kinspace/internal/validation"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// validationErrors are user-input failures that map to 400
var validationErrors = []error{
	validation.ErrEmailRequired,
	validation.ErrEmailInvalid,
	validation.ErrPasswordTooShort,
	validation.ErrNameRequired,
	validation.ErrNameTooLong,
	validation.ErrCodeInvalid,
}

// respondServiceError maps service errors onto HTTP status codes. Anything
// unrecognized is an internal failure: logged in full, surfaced generically.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotAMember),
		errors.Is(err, service.ErrOwnerOnly):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrFamilyNotFound),
		errors.Is(err, service.ErrPersonNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPersonNotInFamily),
		errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		for _, ve := range validationErrors {
			if errors.Is(err, ve) {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
