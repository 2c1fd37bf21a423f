package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIssueTokenSetsCookie(t *testing.T) {
	tokens := testTokens()
	h := NewAuthHandler(tokens, false, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"a@x.com","name":"Ada"}`))
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "token", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	claims, err := tokens.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestIssueTokenSecureCookie(t *testing.T) {
	h := NewAuthHandler(testTokens(), true, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"a@x.com"}`))
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	h := NewAuthHandler(testTokens(), false, zap.NewNop())

	for _, body := range []string{`{}`, `{"email":"not-an-email"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.IssueToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Empty(t, rec.Result().Cookies(), body)
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	h := NewAuthHandler(testTokens(), false, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
