package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// setupMockDB swaps the global pool for a sqlmock-backed one and
// verifies all expectations when the test ends.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := db
	db = sqlx.NewDb(mockDB, "mysql")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
		db = prev
	})
	return mock
}

// setupCookieStore replaces the MySQL-backed session store with an
// in-memory cookie store for the duration of the test.
func setupCookieStore(t *testing.T) {
	t.Helper()
	prev := sessionStore
	sessionStore = sessions.NewCookieStore([]byte("test-secret"))
	t.Cleanup(func() {
		sessionStore = prev
	})
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// adminContext builds a request context carrying an admin session, the
// way the route guard would after a successful check.
func adminContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(t, method, target, body)
	c.Set(contextKeyUser, &SessionUser{UserID: 1, Role: roleAdmin, Username: "root", DisplayName: "Root Admin"})
	return c, rec
}

func viewerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(t, method, target, body)
	c.Set(contextKeyUser, &SessionUser{UserID: 42, Role: roleViewer, Username: "casual", DisplayName: "Casual Viewer"})
	return c, rec
}
