package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// GET /api/viewer/series
//
// The release countries are aggregated into a JSON array inside MySQL
// so the whole catalog page is one query.

func apiViewerSeriesListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	query := `SELECT s.id, s.name, s.episode_count, s.original_language,
	                 COALESCE(GROUP_CONCAT(DISTINCT g.genre ORDER BY g.genre SEPARATOR ', '), '') AS genres,
	                 COALESCE(CONCAT('[', GROUP_CONCAT(DISTINCT IF(c.id IS NULL, NULL, JSON_OBJECT('country_id', c.id, 'country_name', c.name))), ']'), '[]') AS countries,
	                 AVG(f.rating) AS avg_rating,
	                 COUNT(DISTINCT f.account) AS feedback_count
	          FROM series s
	          LEFT JOIN series_genre g ON s.id = g.series_id
	          LEFT JOIN series_release_country rc ON s.id = rc.series_id
	          LEFT JOIN country c ON rc.country_id = c.id
	          LEFT JOIN feedback f ON s.id = f.series_id`
	conditions := []string{}
	params := []interface{}{}
	if genre := c.QueryParam("genre"); genre != "" {
		conditions = append(conditions, "s.id IN (SELECT series_id FROM series_genre WHERE genre = ?)")
		params = append(params, genre)
	}
	if language := c.QueryParam("language"); language != "" {
		conditions = append(conditions, "s.original_language = ?")
		params = append(params, language)
	}
	if countryID := c.QueryParam("country_id"); countryID != "" {
		conditions = append(conditions, "s.id IN (SELECT series_id FROM series_release_country WHERE country_id = ?)")
		params = append(params, countryID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY s.id ORDER BY s.name"

	var rows []struct {
		SeriesRow
		Genres        string          `db:"genres"`
		Countries     string          `db:"countries"`
		AvgRating     sql.NullFloat64 `db:"avg_rating"`
		FeedbackCount int             `db:"feedback_count"`
	}
	if err := conn.SelectContext(ctx, &rows, query, params...); err != nil {
		c.Logger().Errorf("error Select series catalog: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]SeriesSummary, 0, len(rows))
	for _, row := range rows {
		countries := []SeriesCountry{}
		if err := json.Unmarshal([]byte(row.Countries), &countries); err != nil {
			c.Logger().Errorf("error Unmarshal countries for series=%d: %s", row.ID, err)
			return errorResponse(c, 500, "internal server error")
		}
		result = append(result, SeriesSummary{
			SeriesID:         row.ID,
			Name:             row.Name,
			EpisodeCount:     row.EpisodeCount,
			OriginalLanguage: row.OriginalLanguage,
			Genres:           row.Genres,
			Countries:        countries,
			AvgRating:        nullFloatPtr(row.AvgRating),
			FeedbackCount:    row.FeedbackCount,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// GET /api/viewer/series/:seriesID

func apiViewerSeriesDetailHandler(c echo.Context) error {
	seriesID, err := paramID(c, "seriesID")
	if err != nil {
		return errorResponse(c, 400, "bad series id")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	series, err := getSeriesByID(ctx, conn, seriesID)
	if err != nil {
		c.Logger().Errorf("error getSeriesByID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if series == nil {
		return errorResponse(c, 404, "series not found")
	}

	detail := SeriesDetail{
		SeriesID:         series.ID,
		Name:             series.Name,
		EpisodeCount:     series.EpisodeCount,
		OriginalLanguage: series.OriginalLanguage,
		Genres:           []string{},
		Subtitles:        []string{},
		Dubbings:         []string{},
		ReleaseCountries: []ReleaseCountry{},
		Episodes:         []Episode{},
	}

	if err := conn.SelectContext(ctx, &detail.Genres,
		"SELECT `genre` FROM `series_genre` WHERE `series_id` = ? ORDER BY `genre`", seriesID); err != nil {
		c.Logger().Errorf("error Select series_genre: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	if err := conn.SelectContext(ctx, &detail.Subtitles,
		"SELECT `language` FROM `series_subtitle` WHERE `series_id` = ? ORDER BY `language`", seriesID); err != nil {
		c.Logger().Errorf("error Select series_subtitle: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	if err := conn.SelectContext(ctx, &detail.Dubbings,
		"SELECT `language` FROM `series_dubbing` WHERE `series_id` = ? ORDER BY `language`", seriesID); err != nil {
		c.Logger().Errorf("error Select series_dubbing: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	var releases []struct {
		CountryID   int          `db:"country_id"`
		CountryName string       `db:"country_name"`
		ReleaseDate sql.NullTime `db:"release_date"`
	}
	if err := conn.SelectContext(
		ctx,
		&releases,
		`SELECT rc.country_id, c.name AS country_name, rc.release_date
		 FROM series_release_country rc
		 JOIN country c ON rc.country_id = c.id
		 WHERE rc.series_id = ?`,
		seriesID,
	); err != nil {
		c.Logger().Errorf("error Select series_release_country: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	for _, release := range releases {
		entry := ReleaseCountry{CountryID: release.CountryID, CountryName: release.CountryName}
		if release.ReleaseDate.Valid {
			entry.ReleaseDate = formatDate(release.ReleaseDate.Time)
		}
		detail.ReleaseCountries = append(detail.ReleaseCountries, entry)
	}

	var episodes []EpisodeRow
	if err := conn.SelectContext(ctx, &episodes,
		"SELECT * FROM `episode` WHERE `series_id` = ? ORDER BY `episode_number`", seriesID); err != nil {
		c.Logger().Errorf("error Select episode: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	for _, ep := range episodes {
		detail.Episodes = append(detail.Episodes, Episode{
			EpisodeID:     ep.ID,
			EpisodeNumber: ep.EpisodeNumber,
			ScheduleStart: ep.ScheduleStart,
			ScheduleEnd:   ep.ScheduleEnd,
			ViewerCount:   ep.ViewerCount,
			Interrupted:   ep.Interrupted,
		})
	}

	return c.JSON(http.StatusOK, detail)
}

// GET /api/viewer/recommendations

func apiViewerRecommendationsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		SeriesID      int     `db:"series_id"`
		Name          string  `db:"name"`
		AvgRating     float64 `db:"avg_rating"`
		FeedbackCount int     `db:"feedback_count"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT s.id AS series_id, s.name, AVG(f.rating) AS avg_rating, COUNT(*) AS feedback_count
		 FROM feedback f
		 JOIN series s ON f.series_id = s.id
		 GROUP BY s.id
		 ORDER BY avg_rating DESC, feedback_count DESC
		 LIMIT 5`,
	); err != nil {
		c.Logger().Errorf("error Select recommendations: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]Recommendation, 0, len(rows))
	for _, row := range rows {
		result = append(result, Recommendation{
			SeriesID:      row.SeriesID,
			Name:          row.Name,
			AvgRating:     row.AvgRating,
			FeedbackCount: row.FeedbackCount,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// GET /api/viewer/series/:seriesID/feedback

func apiViewerFeedbackGetHandler(c echo.Context) error {
	seriesID, err := paramID(c, "seriesID")
	if err != nil {
		return errorResponse(c, 400, "bad series id")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		FeedbackRow
		Username  string `db:"username"`
		FirstName string `db:"first_name"`
		LastName  string `db:"last_name"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT f.account, f.series_id, f.rating, f.body, f.posted_on,
		        v.username, v.first_name, v.last_name
		 FROM feedback f
		 JOIN viewer v ON f.account = v.account
		 WHERE f.series_id = ?
		 ORDER BY f.posted_on DESC`,
		seriesID,
	); err != nil {
		c.Logger().Errorf("error Select feedback by series_id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	response := SeriesFeedbackResponse{FeedbackList: []FeedbackEntry{}}
	account := sessionUser(c).UserID
	var total int
	for _, row := range rows {
		response.FeedbackList = append(response.FeedbackList, FeedbackEntry{
			Rating:    row.Rating,
			Body:      row.Body,
			PostedOn:  formatDate(row.PostedOn),
			Username:  row.Username,
			FirstName: row.FirstName,
			LastName:  row.LastName,
		})
		total += row.Rating
		if row.Account == account {
			response.UserFeedback = &OwnFeedback{
				Rating:   row.Rating,
				Body:     row.Body,
				PostedOn: formatDate(row.PostedOn),
			}
		}
	}
	response.Stats.FeedbackCount = len(rows)
	if len(rows) > 0 {
		avg := float64(total) / float64(len(rows))
		response.Stats.AvgRating = &avg
	}

	return c.JSON(http.StatusOK, response)
}

// POST /api/viewer/series/:seriesID/feedback
//
// One row per (account, series); resubmitting overwrites the previous
// rating and body.

func apiViewerFeedbackSubmitHandler(c echo.Context) error {
	seriesID, err := paramID(c, "seriesID")
	if err != nil {
		return errorResponse(c, 400, "bad series id")
	}

	var req SubmitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to SubmitFeedbackRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return errorResponse(c, 400, "rating must be between 1 and 5")
	}
	if len(req.Text) < 5 {
		return errorResponse(c, 400, "feedback text must be at least 5 characters")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	series, err := getSeriesByID(ctx, conn, seriesID)
	if err != nil {
		c.Logger().Errorf("error getSeriesByID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if series == nil {
		return errorResponse(c, 404, "series not found")
	}

	if _, err := conn.ExecContext(
		ctx,
		"INSERT INTO `feedback` (`account`, `series_id`, `rating`, `body`, `posted_on`) VALUES (?, ?, ?, ?, ?)"+
			" ON DUPLICATE KEY UPDATE `rating` = VALUES(`rating`), `body` = VALUES(`body`), `posted_on` = VALUES(`posted_on`)",
		sessionUser(c).UserID, seriesID, req.Rating, req.Text, time.Now(),
	); err != nil {
		c.Logger().Errorf("error Upsert feedback: %s", err)
		return errorResponseDetails(c, 500, "failed to submit feedback", err.Error())
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Feedback submitted"})
}

// DELETE /api/viewer/series/:seriesID/feedback

func apiViewerFeedbackDeleteHandler(c echo.Context) error {
	seriesID, err := paramID(c, "seriesID")
	if err != nil {
		return errorResponse(c, 400, "bad series id")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	result, err := conn.ExecContext(
		ctx,
		"DELETE FROM `feedback` WHERE `account` = ? AND `series_id` = ?",
		sessionUser(c).UserID, seriesID,
	)
	if err != nil {
		c.Logger().Errorf("error Delete own feedback: %s", err)
		return errorResponseDetails(c, 500, "failed to delete feedback", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "feedback not found")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Feedback deleted"})
}

// GET /api/viewer/my-feedback

func apiViewerMyFeedbackHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		FeedbackRow
		SeriesName string `db:"series_name"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT f.account, f.series_id, f.rating, f.body, f.posted_on, s.name AS series_name
		 FROM feedback f
		 JOIN series s ON f.series_id = s.id
		 WHERE f.account = ?
		 ORDER BY f.posted_on DESC`,
		sessionUser(c).UserID,
	); err != nil {
		c.Logger().Errorf("error Select my feedback: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]MyFeedbackEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, MyFeedbackEntry{
			SeriesID:   row.SeriesID,
			SeriesName: row.SeriesName,
			Rating:     row.Rating,
			Body:       row.Body,
			PostedOn:   formatDate(row.PostedOn),
		})
	}
	return c.JSON(http.StatusOK, result)
}

// GET /api/viewer/profile

func apiViewerProfileGetHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var row struct {
		ViewerRow
		CountryName string `db:"country_name"`
	}
	if err := conn.GetContext(
		ctx,
		&row,
		`SELECT v.*, c.name AS country_name
		 FROM viewer v
		 JOIN country c ON v.country_id = c.id
		 WHERE v.account = ?`,
		sessionUser(c).UserID,
	); err != nil {
		if err == sql.ErrNoRows {
			return errorResponse(c, 404, "profile not found")
		}
		c.Logger().Errorf("error Get profile: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	return c.JSON(http.StatusOK, Profile{
		Account:       row.Account,
		Username:      row.Username,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Street:        row.Street,
		City:          row.City,
		State:         row.State,
		Zipcode:       row.Zipcode,
		MonthlyCharge: row.MonthlyCharge,
		CountryName:   row.CountryName,
	})
}

// PUT /api/viewer/profile

func apiViewerProfileUpdateHandler(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to UpdateProfileRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.Street == "" || req.City == "" || req.State == "" || req.Zipcode == "" || req.CountryID == 0 {
		return errorResponse(c, 400, "all address fields and country are required")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	if _, err := conn.ExecContext(
		ctx,
		"UPDATE `viewer` SET `street` = ?, `city` = ?, `state` = ?, `zipcode` = ?, `country_id` = ? WHERE `account` = ?",
		req.Street, req.City, req.State, req.Zipcode, req.CountryID, sessionUser(c).UserID,
	); err != nil {
		c.Logger().Errorf("error Update profile: %s", err)
		return errorResponseDetails(c, 500, "failed to update profile", err.Error())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated"})
}

// POST /api/viewer/change-password
//
// Requires the current password and the stored security answer; the
// answer comparison ignores surrounding whitespace.

func apiViewerChangePasswordHandler(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to ChangePasswordRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.OldPassword == "" || req.NewPassword == "" || req.SecurityAnswer == "" {
		return errorResponse(c, 400, "old password, new password and security answer are required")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	viewer, err := getViewerByAccount(ctx, conn, sessionUser(c).UserID)
	if err != nil {
		c.Logger().Errorf("error getViewerByAccount: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if viewer == nil {
		return errorResponse(c, 404, "viewer not found")
	}
	if !viewer.SecurityAnswer.Valid {
		return errorResponse(c, 400, "no security answer on record")
	}

	ok, err := comparePasswordHash(req.OldPassword, viewer.PasswordHash)
	if err != nil {
		c.Logger().Errorf("error comparePasswordHash: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if !ok {
		return errorResponse(c, 401, "old password is incorrect")
	}
	if !strings.EqualFold(strings.TrimSpace(req.SecurityAnswer), strings.TrimSpace(viewer.SecurityAnswer.String)) {
		return errorResponse(c, 401, "security answer is incorrect")
	}

	hash, err := generatePasswordHash(req.NewPassword)
	if err != nil {
		c.Logger().Errorf("error generatePasswordHash: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if _, err := conn.ExecContext(
		ctx,
		"UPDATE `viewer` SET `password_hash` = ? WHERE `account` = ?",
		hash, viewer.Account,
	); err != nil {
		c.Logger().Errorf("error Update password: %s", err)
		return errorResponseDetails(c, 500, "failed to change password", err.Error())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed"})
}

// GET /api/viewer/security-question

func apiViewerSecurityQuestionHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	viewer, err := getViewerByAccount(ctx, conn, sessionUser(c).UserID)
	if err != nil {
		c.Logger().Errorf("error getViewerByAccount: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if viewer == nil || !viewer.SecurityQuestion.Valid {
		return errorResponse(c, 404, "no security question on record")
	}

	return c.JSON(http.StatusOK, SecurityQuestionResponse{SecurityQuestion: viewer.SecurityQuestion.String})
}
