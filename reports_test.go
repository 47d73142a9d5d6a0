package main

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportEchoesQueryText(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(reportQ6)).
		WillReturnRows(sqlmock.NewRows([]string{
			"account", "username", "first_name", "last_name", "feedback_count",
		}).AddRow(42, "casual", "Jane", "Doe", 12))

	c, rec := adminContext(t, http.MethodGet, "/api/admin/reports/q6", "")
	require.NoError(t, apiReportQ6Handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"query":`)
	assert.Contains(t, rec.Body.String(), `"feedback_count":12`)
}

func TestReportHighlyRatedThreshold(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.avg_rating > 4 AND r.feedback_count >= 2")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "avg_rating", "feedback_count"}).
			AddRow("Dark Harbor", 4.5, 3))

	c, rec := adminContext(t, http.MethodGet, "/api/admin/reports/q5", "")
	require.NoError(t, apiReportQ5Handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dark Harbor")
}
