package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackSubmitRejectsBadRating(t *testing.T) {
	for _, rating := range []int{0, -1, 6} {
		c, rec := viewerContext(t, http.MethodPost, "/api/viewer/series/10/feedback",
			fmt.Sprintf(`{"rating":%d,"text":"great show"}`, rating))
		c.SetParamNames("seriesID")
		c.SetParamValues("10")
		require.NoError(t, apiViewerFeedbackSubmitHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d must be rejected", rating)
	}
}

func TestFeedbackSubmitRejectsShortText(t *testing.T) {
	c, rec := viewerContext(t, http.MethodPost, "/api/viewer/series/10/feedback",
		`{"rating":4,"text":"meh"}`)
	c.SetParamNames("seriesID")
	c.SetParamValues("10")
	require.NoError(t, apiViewerFeedbackSubmitHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 5 characters")
}

func TestFeedbackSubmitUpserts(t *testing.T) {
	mock := setupMockDB(t)
	expectSeriesLookup(mock, 10)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `feedback`")).
		WithArgs(42, 10, 4, "really great show", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := viewerContext(t, http.MethodPost, "/api/viewer/series/10/feedback",
		`{"rating":4,"text":"really great show"}`)
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiViewerFeedbackSubmitHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestFeedbackSubmitSeriesMissing(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM series WHERE `id` = ?")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	c, rec := viewerContext(t, http.MethodPost, "/api/viewer/series/99/feedback",
		`{"rating":4,"text":"really great show"}`)
	c.SetParamNames("seriesID")
	c.SetParamValues("99")

	require.NoError(t, apiViewerFeedbackSubmitHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackDeleteOnlyOwnRow(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `feedback` WHERE `account` = ? AND `series_id` = ?")).
		WithArgs(42, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := viewerContext(t, http.MethodDelete, "/api/viewer/series/10/feedback", "")
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiViewerFeedbackDeleteHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFeedbackDeleteNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `feedback` WHERE `account` = ? AND `series_id` = ?")).
		WithArgs(42, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := viewerContext(t, http.MethodDelete, "/api/viewer/series/10/feedback", "")
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiViewerFeedbackDeleteHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeriesDetailReturnsEmptyListsNotNull(t *testing.T) {
	mock := setupMockDB(t)
	expectSeriesLookup(mock, 10)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `genre` FROM `series_genre`")).
		WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"genre"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `language` FROM `series_subtitle`")).
		WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"language"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `language` FROM `series_dubbing`")).
		WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"language"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM series_release_country rc")).
		WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"country_id", "country_name", "release_date"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `episode`")).
		WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{
		"id", "series_id", "episode_number", "schedule_start", "schedule_end", "viewer_count", "interrupted",
	}))

	c, rec := viewerContext(t, http.MethodGet, "/api/viewer/series/10", "")
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiViewerSeriesDetailHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"genres":[]`)
	assert.Contains(t, body, `"subtitles":[]`)
	assert.Contains(t, body, `"dubbings":[]`)
	assert.Contains(t, body, `"release_countries":[]`)
	assert.Contains(t, body, `"episodes":[]`)
}

func TestChangePasswordWrongSecurityAnswer(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM viewer WHERE `account` = ?")).
		WithArgs(42).
		WillReturnRows(viewerRowFixture(42, "casual", mustHash(t, "oldpw")))

	c, rec := viewerContext(t, http.MethodPost, "/api/viewer/change-password",
		`{"old_password":"oldpw","new_password":"newpw","security_answer":"red"}`)

	require.NoError(t, apiViewerChangePasswordHandler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "security answer is incorrect")
}

func TestChangePasswordSuccess(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM viewer WHERE `account` = ?")).
		WithArgs(42).
		WillReturnRows(viewerRowFixture(42, "casual", mustHash(t, "oldpw")))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `viewer` SET `password_hash` = ? WHERE `account` = ?")).
		WithArgs(sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// the stored answer is "blue"; case and surrounding space are ignored
	c, rec := viewerContext(t, http.MethodPost, "/api/viewer/change-password",
		`{"old_password":"oldpw","new_password":"newpw","security_answer":" Blue "}`)

	require.NoError(t, apiViewerChangePasswordHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password changed")
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM viewer WHERE `account` = ?")).
		WithArgs(42).
		WillReturnRows(viewerRowFixture(42, "casual", mustHash(t, "oldpw")))

	c, rec := viewerContext(t, http.MethodPost, "/api/viewer/change-password",
		`{"old_password":"nope","new_password":"newpw","security_answer":"blue"}`)

	require.NoError(t, apiViewerChangePasswordHandler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "old password is incorrect")
}
