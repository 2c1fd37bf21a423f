package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasibmuhammad/portal-server/internal/auth"
)

func newAuthenticated(t *testing.T, tokens *auth.TokenService, email string) *http.Cookie {
	t.Helper()
	token, _, err := tokens.Issue(email)
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: token}
}

func TestRequireAuthMissingCookie(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	called := false
	handler := NewAuthenticator(tokens).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/submissions/mine", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run without a credential cookie")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	issuer := auth.NewTokenService("test-secret", -time.Minute)
	tokens := auth.NewTokenService("test-secret", time.Hour)

	called := false
	handler := NewAuthenticator(tokens).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/submissions/mine", nil)
	req.AddCookie(newAuthenticated(t, issuer, "a@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAuthAttachesEmail(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	var seen string
	handler := NewAuthenticator(tokens).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := CallerEmail(r)
		require.True(t, ok)
		seen = email
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/submissions/mine", nil)
	req.AddCookie(newAuthenticated(t, tokens, "a@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", seen)
}

func TestAuthorizeSelf(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/assignments?email=a@x.com", nil)
	req = req.WithContext(context.WithValue(req.Context(), emailContextKey, "a@x.com"))

	email, err := AuthorizeSelf(req)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestAuthorizeSelfMismatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/assignments?email=b@x.com", nil)
	req = req.WithContext(context.WithValue(req.Context(), emailContextKey, "a@x.com"))

	_, err := AuthorizeSelf(req)
	assert.ErrorIs(t, err, ErrEmailMismatch)
}

func TestAuthorizeSelfWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/assignments?email=a@x.com", nil)

	_, err := AuthorizeSelf(req)
	assert.ErrorIs(t, err, ErrNoIdentity)
}
