package main

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhouseDeleteBlockedByContracts(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM contract WHERE phouse_id = ? LIMIT 1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	c, rec := adminContext(t, http.MethodDelete, "/api/admin/phouses/5", "")
	c.SetParamNames("phouseID")
	c.SetParamValues("5")

	require.NoError(t, apiAdminPhouseDeleteHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "active contracts")
}

func TestPhouseDeleteCascadesCollaborations(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM contract WHERE phouse_id = ? LIMIT 1")).
		WithArgs(5).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM collaboration WHERE phouse_id = ?")).
		WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM phouse WHERE `id` = ?")).
		WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAuditInsert(mock)

	c, rec := adminContext(t, http.MethodDelete, "/api/admin/phouses/5", "")
	c.SetParamNames("phouseID")
	c.SetParamValues("5")

	require.NoError(t, apiAdminPhouseDeleteHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPhouseDeleteNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM contract WHERE phouse_id = ? LIMIT 1")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM collaboration WHERE phouse_id = ?")).
		WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM phouse WHERE `id` = ?")).
		WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, rec := adminContext(t, http.MethodDelete, "/api/admin/phouses/99", "")
	c.SetParamNames("phouseID")
	c.SetParamValues("99")

	require.NoError(t, apiAdminPhouseDeleteHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollaborationCreateDuplicate(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO collaboration")).
		WithArgs(3, 5).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	c, rec := adminContext(t, http.MethodPost, "/api/admin/collaborations",
		`{"producer_id":3,"phouse_id":5}`)

	require.NoError(t, apiAdminCollaborationCreateHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestCollaborationDeleteByBodyPair(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM collaboration WHERE `producer_id` = ? AND `phouse_id` = ?")).
		WithArgs(3, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectAuditInsert(mock)

	c, rec := adminContext(t, http.MethodDelete, "/api/admin/collaborations",
		`{"producer_id":3,"phouse_id":5}`)

	require.NoError(t, apiAdminCollaborationDeleteHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContractCreateValidation(t *testing.T) {
	c, rec := adminContext(t, http.MethodPost, "/api/admin/contracts",
		`{"issued_date":"","episode_price":0,"phouse_id":0,"series_id":0}`)
	require.NoError(t, apiAdminContractCreateHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminFeedbackDeleteRequiresKeyPair(t *testing.T) {
	c, rec := adminContext(t, http.MethodDelete, "/api/admin/feedback",
		`{"account":0,"series_id":10}`)
	require.NoError(t, apiAdminFeedbackDeleteHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminFeedbackDeleteNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM feedback WHERE `account` = ? AND `series_id` = ?")).
		WithArgs(42, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := adminContext(t, http.MethodDelete, "/api/admin/feedback",
		`{"account":42,"series_id":10}`)
	require.NoError(t, apiAdminFeedbackDeleteHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminFeedbackListAppliesFilters(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("WHERE f.series_id = \\? AND f.rating = \\?").
		WithArgs("10", "4").
		WillReturnRows(sqlmock.NewRows([]string{
			"account", "series_id", "rating", "body", "posted_on", "series_name", "username",
		}))

	c, rec := adminContext(t, http.MethodGet, "/api/admin/feedback?series_id=10&rating=4", "")
	require.NoError(t, apiAdminFeedbackListHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
