package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kinspace/internal/service"
	"kinspace/internal/validation"
)

func TestRespondErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondError(recorder, 418, "Teapot")

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Teapot" {
		t.Fatalf("expected error 'Teapot', got %q", body["error"])
	}
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not a member", service.ErrNotAMember, http.StatusForbidden},
		{"owner only", service.ErrOwnerOnly, http.StatusForbidden},
		{"invalid code", service.ErrInvalidCode, http.StatusNotFound},
		{"family not found", service.ErrFamilyNotFound, http.StatusNotFound},
		{"person not found", service.ErrPersonNotFound, http.StatusNotFound},
		{"already claimed", service.ErrAlreadyClaimed, http.StatusConflict},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"person not in family", service.ErrPersonNotInFamily, http.StatusBadRequest},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"session expired", service.ErrSessionExpired, http.StatusUnauthorized},
		{"validation failure", validation.ErrNameRequired, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("context: %w", service.ErrNotAMember), http.StatusForbidden},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondServiceError(recorder, tt.err)
			if recorder.Code != tt.status {
				t.Errorf("respondServiceError(%v) status = %d, want %d", tt.err, recorder.Code, tt.status)
			}
		})
	}
}

func TestRespondServiceErrorLogsInternalFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	respondServiceError(recorder, errors.New("boom"))

	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected log to include error, got %q", buf.String())
	}

	var body map[string]string
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Fatalf("expected generic message, got %q", body["error"])
	}
}
