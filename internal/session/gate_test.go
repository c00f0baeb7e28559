package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, secure bool) *Gate {
	t.Helper()
	codec, err := NewJWTCodec("secret", DefaultTTL)
	require.NoError(t, err)
	return NewGate(codec, DefaultCookieConfig(secure))
}

func TestGate_CommitSetsCookieAttributes(t *testing.T) {
	g := newTestGate(t, true)

	c, err := g.Commit("user-1")
	require.NoError(t, err)

	assert.Equal(t, "TM_session", c.Name)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 30*24*60*60, c.MaxAge)
	assert.NotEmpty(t, c.Value)

	insecure, err := newTestGate(t, false).Commit("user-1")
	require.NoError(t, err)
	assert.False(t, insecure.Secure)
}

func TestGate_CurrentUserID(t *testing.T) {
	g := newTestGate(t, false)
	cookie, err := g.Commit("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.AddCookie(cookie)
	id, ok := g.CurrentUserID(req)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)

	anonymous := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	_, ok = g.CurrentUserID(anonymous)
	assert.False(t, ok)

	bad := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	bad.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	_, ok = g.CurrentUserID(bad)
	assert.False(t, ok)
}

func TestGate_RequireUserID(t *testing.T) {
	g := newTestGate(t, false)

	req := httptest.NewRequest(http.MethodGet, "/tasks?view=all", nil)
	_, err := g.RequireUserID(req, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	var unauth *UnauthenticatedError
	require.ErrorAs(t, err, &unauth)
	assert.Equal(t, "/tasks", unauth.RedirectTo)
	assert.Equal(t, "/login?redirectTo=/tasks", unauth.LoginURL())

	_, err = g.RequireUserID(req, "/elsewhere")
	require.ErrorAs(t, err, &unauth)
	assert.Equal(t, "/elsewhere", unauth.RedirectTo)

	cookie, err := g.Commit("user-7")
	require.NoError(t, err)
	req.AddCookie(cookie)
	id, err := g.RequireUserID(req, "")
	require.NoError(t, err)
	assert.Equal(t, "user-7", id)
}

func TestGate_End(t *testing.T) {
	c := newTestGate(t, true).End()
	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Expires.Before(time.Now()))
	assert.True(t, c.HttpOnly)
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/login", LoginURL(""))
	assert.Equal(t, "/login?redirectTo=/tasks", LoginURL("/tasks"))
	assert.Equal(t, "/login?redirectTo=/a+b/c%3Fd%3D1", LoginURL("/a b/c?d=1"))
}
