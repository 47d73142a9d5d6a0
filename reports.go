package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Admin report catalog. Each endpoint runs one fixed read-only query
// and echoes the query text alongside the rows so the dashboard can
// show what was executed.

func runReport(c echo.Context, query string, dest interface{}) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	if err := conn.SelectContext(ctx, dest, query); err != nil {
		c.Logger().Errorf("error Select report: %s", err)
		return errorResponseDetails(c, 500, "report query failed", err.Error())
	}
	return c.JSON(http.StatusOK, ReportResponse{Query: query, Result: dest})
}

// GET /api/admin/reports/q1
//
// Series catalog with genre and release country, one row per
// (series, genre, country) combination.

const reportQ1 = `SELECT s.name AS series_name, g.genre, c.name AS country_name, rc.release_date
FROM series s
JOIN series_genre g ON s.id = g.series_id
JOIN series_release_country rc ON s.id = rc.series_id
JOIN country c ON rc.country_id = c.id
ORDER BY s.name, g.genre, c.name`

func apiReportQ1Handler(c echo.Context) error {
	var rows []struct {
		SeriesName  string    `db:"series_name" json:"series_name"`
		Genre       string    `db:"genre" json:"genre"`
		CountryName string    `db:"country_name" json:"country_name"`
		ReleaseDate time.Time `db:"release_date" json:"release_date"`
	}
	return runReport(c, reportQ1, &rows)
}

// GET /api/admin/reports/q2
//
// Viewers who left feedback on at least one Drama series.

const reportQ2 = `SELECT DISTINCT v.account, v.username, v.first_name, v.last_name
FROM viewer v
JOIN feedback f ON v.account = f.account
WHERE f.series_id IN (SELECT series_id FROM series_genre WHERE genre = 'Drama')
ORDER BY v.account`

func apiReportQ2Handler(c echo.Context) error {
	var rows []struct {
		Account   int    `db:"account" json:"account"`
		Username  string `db:"username" json:"username"`
		FirstName string `db:"first_name" json:"first_name"`
		LastName  string `db:"last_name" json:"last_name"`
	}
	return runReport(c, reportQ2, &rows)
}

// GET /api/admin/reports/q3
//
// Feedback rated above the average for its own series.

const reportQ3 = `SELECT s.name AS series_name, v.username, f.rating, f.posted_on
FROM feedback f
JOIN series s ON f.series_id = s.id
JOIN viewer v ON f.account = v.account
WHERE f.rating > (SELECT AVG(f2.rating) FROM feedback f2 WHERE f2.series_id = f.series_id)
ORDER BY s.name, f.rating DESC`

func apiReportQ3Handler(c echo.Context) error {
	var rows []struct {
		SeriesName string    `db:"series_name" json:"series_name"`
		Username   string    `db:"username" json:"username"`
		Rating     int       `db:"rating" json:"rating"`
		PostedOn   time.Time `db:"posted_on" json:"posted_on"`
	}
	return runReport(c, reportQ3, &rows)
}

// GET /api/admin/reports/q4
//
// Series accessible to English speakers through subtitles or dubbing.

const reportQ4 = `SELECT s.id, s.name, 'subtitle' AS via
FROM series s
WHERE s.id IN (SELECT series_id FROM series_subtitle WHERE language = 'English')
UNION
SELECT s.id, s.name, 'dubbing' AS via
FROM series s
WHERE s.id IN (SELECT series_id FROM series_dubbing WHERE language = 'English')
ORDER BY name, via`

func apiReportQ4Handler(c echo.Context) error {
	var rows []struct {
		ID   int    `db:"id" json:"series_id"`
		Name string `db:"name" json:"name"`
		Via  string `db:"via" json:"via"`
	}
	return runReport(c, reportQ4, &rows)
}

// GET /api/admin/reports/q5
//
// Highly rated series: average above 4 across at least two feedbacks.

const reportQ5 = `WITH series_rating AS (
    SELECT f.series_id, AVG(f.rating) AS avg_rating, COUNT(*) AS feedback_count
    FROM feedback f
    GROUP BY f.series_id
)
SELECT s.name, r.avg_rating, r.feedback_count
FROM series_rating r
JOIN series s ON r.series_id = s.id
WHERE r.avg_rating > 4 AND r.feedback_count >= 2
ORDER BY r.avg_rating DESC`

func apiReportQ5Handler(c echo.Context) error {
	var rows []struct {
		Name          string  `db:"name" json:"name"`
		AvgRating     float64 `db:"avg_rating" json:"avg_rating"`
		FeedbackCount int     `db:"feedback_count" json:"feedback_count"`
	}
	return runReport(c, reportQ5, &rows)
}

// GET /api/admin/reports/q6
//
// The three most active reviewers.

const reportQ6 = `SELECT v.account, v.username, v.first_name, v.last_name, COUNT(*) AS feedback_count
FROM feedback f
JOIN viewer v ON f.account = v.account
GROUP BY v.account
ORDER BY feedback_count DESC
LIMIT 3`

func apiReportQ6Handler(c echo.Context) error {
	var rows []struct {
		Account       int    `db:"account" json:"account"`
		Username      string `db:"username" json:"username"`
		FirstName     string `db:"first_name" json:"first_name"`
		LastName      string `db:"last_name" json:"last_name"`
		FeedbackCount int    `db:"feedback_count" json:"feedback_count"`
	}
	return runReport(c, reportQ6, &rows)
}
