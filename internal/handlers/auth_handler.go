package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hasibmuhammad/portal-server/internal/auth"
)

type AuthHandler struct {
	tokens       *auth.TokenService
	cookieSecure bool
	logger       *zap.Logger
}

func NewAuthHandler(tokens *auth.TokenService, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, cookieSecure: cookieSecure, logger: logger}
}

// IssueToken handles POST /jwt: it signs a token for the posted
// identity and sets the credential cookie. The payload is trusted
// beyond requiring an email; authentication happens upstream.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		http.Error(w, "A valid email is required", http.StatusBadRequest)
		return
	}

	token, expiresAt, err := h.tokens.Issue(payload.Email)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.credentialCookie(token, expiresAt))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Logout handles GET /logout by expiring the credential cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.credentialCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *AuthHandler) credentialCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    value,
		Expires:  expires,
		HttpOnly: true,
		Path:     "/",
		Secure:   h.cookieSecure,
	}
	// SameSite=None requires Secure; browsers drop the cookie otherwise.
	if h.cookieSecure {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
