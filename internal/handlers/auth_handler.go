package handlers

import (
	"encoding/json"
	"net/http"

	"kinspace/internal/service"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a new account and logs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	session, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	setSessionCookie(w, session.ID, session.ExpiresAt)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created",
		"account": map[string]interface{}{
			"id":    account.ID,
			"email": account.Email,
			"name":  account.Name,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an account and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, account, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	setSessionCookie(w, session.ID, session.ExpiresAt)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged in",
		"account": map[string]interface{}{
			"id":    account.ID,
			"email": account.Email,
			"name":  account.Name,
		},
	})
}

// Logout invalidates the caller's session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}
	clearSessionCookie(w)

	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
