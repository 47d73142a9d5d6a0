package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionCookies logs the given user in against the cookie store and
// returns the cookies a browser would carry afterwards.
func sessionCookies(t *testing.T, user SessionUser) []*http.Cookie {
	t.Helper()
	c, rec := newTestContext(t, http.MethodPost, "/api/login", "")
	require.NoError(t, establishSession(c, user))
	return rec.Result().Cookies()
}

func requestWithCookies(t *testing.T, cookies []*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/series", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestAdminGuardRejectsAnonymous(t *testing.T) {
	setupCookieStore(t)
	c, rec := requestWithCookies(t, nil)

	called := false
	err := adminRequired(func(echo.Context) error {
		called = true
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called, "handler must not run without a session")
}

func TestAdminGuardRejectsViewerRole(t *testing.T) {
	setupCookieStore(t)
	cookies := sessionCookies(t, SessionUser{UserID: 42, Role: roleViewer, Username: "casual"})
	c, rec := requestWithCookies(t, cookies)

	called := false
	err := adminRequired(func(echo.Context) error {
		called = true
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called, "viewer session must not reach admin handlers")
}

func TestViewerGuardRejectsAdminRole(t *testing.T) {
	setupCookieStore(t)
	cookies := sessionCookies(t, SessionUser{UserID: 1, Role: roleAdmin, Username: "root"})
	c, rec := requestWithCookies(t, cookies)

	called := false
	err := viewerRequired(func(echo.Context) error {
		called = true
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called, "admin session must not reach viewer handlers")
}

func TestAdminGuardAttachesSessionUser(t *testing.T) {
	setupCookieStore(t)
	cookies := sessionCookies(t, SessionUser{UserID: 1, Role: roleAdmin, Username: "root", DisplayName: "Root Admin"})
	c, rec := requestWithCookies(t, cookies)

	err := adminRequired(func(c echo.Context) error {
		user := sessionUser(c)
		require.NotNil(t, user)
		assert.Equal(t, 1, user.UserID)
		assert.Equal(t, roleAdmin, user.Role)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
