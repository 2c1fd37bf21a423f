package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hasibmuhammad/portal-server/internal/middleware"
)

var validate = validator.New()

// requireSelf runs the email-match authorization and writes the
// rejection response itself. Callers must return immediately when ok
// is false so no storage operation runs after a rejection.
func requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, err := middleware.AuthorizeSelf(r)
	if err != nil {
		if errors.Is(err, middleware.ErrNoIdentity) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		} else {
			http.Error(w, "Forbidden", http.StatusForbidden)
		}
		return "", false
	}
	return email, true
}
