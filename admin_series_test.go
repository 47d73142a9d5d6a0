package main

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seriesColumns = []string{"id", "name", "episode_count", "original_language"}

func expectSeriesLookup(mock sqlmock.Sqlmock, seriesID int) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM series WHERE `id` = ?")).
		WithArgs(seriesID).
		WillReturnRows(sqlmock.NewRows(seriesColumns).AddRow(seriesID, "Dark Harbor", 10, "English"))
}

func expectAuditInsert(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admin_history")).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestSeriesUpdateReplacesAssociations(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM series WHERE `id` = ? FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE series SET")).
		WithArgs("Dark Harbor", 12, "English", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_genre WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO series_genre")).
		WithArgs(10, "Drama").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO series_genre")).
		WithArgs(10, "Thriller").WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_subtitle WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO series_subtitle")).
		WithArgs(10, "English").WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_dubbing WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_release_country WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO series_release_country")).
		WithArgs(10, 1, "2024-03-01").WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()
	expectAuditInsert(mock)

	c, rec := adminContext(t, http.MethodPut, "/api/admin/series/10",
		`{"name":"Dark Harbor","episode_count":12,"original_language":"English",
		  "genres":["Drama","Thriller"],"subtitles":["English"],"dubbings":[],
		  "release_countries":[{"country_id":1,"release_date":"2024-03-01"}]}`)
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiAdminSeriesUpdateHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Series 10 updated successfully.")
}

func TestSeriesUpdateEmptySetsLeaveTablesEmpty(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM series WHERE `id` = ? FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE series SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// all four association tables are cleared, nothing is re-inserted
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_genre WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_subtitle WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_dubbing WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_release_country WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAuditInsert(mock)

	c, rec := adminContext(t, http.MethodPut, "/api/admin/series/10",
		`{"name":"Dark Harbor","episode_count":10,"original_language":"English",
		  "genres":[],"subtitles":[],"dubbings":[],"release_countries":[]}`)
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiAdminSeriesUpdateHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSeriesUpdateRollsBackOnAssociationFailure(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM series WHERE `id` = ? FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE series SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series_genre WHERE series_id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO series_genre")).
		WithArgs(10, "Drama").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	c, rec := adminContext(t, http.MethodPut, "/api/admin/series/10",
		`{"name":"Dark Harbor","episode_count":10,"original_language":"English",
		  "genres":["Drama"],"subtitles":[],"dubbings":[],"release_countries":[]}`)
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiAdminSeriesUpdateHandler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to update series")
}

func TestSeriesUpdateNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM series WHERE `id` = ? FOR UPDATE")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := adminContext(t, http.MethodPut, "/api/admin/series/99",
		`{"name":"Gone","episode_count":1,"original_language":"English"}`)
	c.SetParamNames("seriesID")
	c.SetParamValues("99")

	require.NoError(t, apiAdminSeriesUpdateHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeriesDeleteCascades(t *testing.T) {
	mock := setupMockDB(t)

	expectSeriesLookup(mock, 10)
	mock.ExpectBegin()
	for _, table := range []string{
		"series_genre", "series_subtitle", "series_dubbing",
		"series_release_country", "feedback", "episode", "contract",
	} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM "+table)).
			WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM series WHERE id = ?")).
		WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAuditInsert(mock)

	c, rec := adminContext(t, http.MethodDelete, "/api/admin/series/10", "")
	c.SetParamNames("seriesID")
	c.SetParamValues("10")

	require.NoError(t, apiAdminSeriesDeleteHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted successfully")
}

func TestSeriesDeleteNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM series WHERE `id` = ?")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	c, rec := adminContext(t, http.MethodDelete, "/api/admin/series/99", "")
	c.SetParamNames("seriesID")
	c.SetParamValues("99")

	require.NoError(t, apiAdminSeriesDeleteHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeriesCreateValidation(t *testing.T) {
	c, rec := adminContext(t, http.MethodPost, "/api/admin/series",
		`{"name":"","episode_count":0,"original_language":""}`)
	require.NoError(t, apiAdminSeriesCreateHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEpisodeUpdateMissingRow(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE episode SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := adminContext(t, http.MethodPut, "/api/admin/episodes/55",
		`{"episode_number":3,"schedule_start":"2024-05-01 20:00:00","schedule_end":"2024-05-01 21:00:00","viewer_count":0,"interrupted":false}`)
	c.SetParamNames("episodeID")
	c.SetParamValues("55")

	require.NoError(t, apiAdminEpisodeUpdateHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
