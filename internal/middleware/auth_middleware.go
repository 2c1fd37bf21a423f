package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/hasibmuhammad/portal-server/internal/auth"
)

var (
	ErrNoIdentity    = errors.New("no authenticated identity on request")
	ErrEmailMismatch = errors.New("asserted email does not match authenticated identity")
)

type contextKey string

const emailContextKey contextKey = "userEmail"

type Authenticator struct {
	tokens *auth.TokenService
}

func NewAuthenticator(tokens *auth.TokenService) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// RequireAuth rejects requests without a valid token cookie and makes
// the verified email available to downstream handlers. Rejection ends
// the request here; the wrapped handler is never invoked.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := a.tokens.Verify(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), emailContextKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerEmail returns the verified email attached by RequireAuth.
func CallerEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(emailContextKey).(string)
	return email, ok
}

// AuthorizeSelf binds the authenticated identity to the email the
// caller asserts in the query string. It returns the verified email on
// success, ErrNoIdentity when RequireAuth did not run, and
// ErrEmailMismatch when the asserted email differs.
func AuthorizeSelf(r *http.Request) (string, error) {
	email, ok := CallerEmail(r)
	if !ok {
		return "", ErrNoIdentity
	}
	if r.URL.Query().Get("email") != email {
		return "", ErrEmailMismatch
	}
	return email, nil
}
