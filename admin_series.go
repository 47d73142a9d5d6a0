package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func getSeriesByID(ctx context.Context, db connOrTx, seriesID int) (*SeriesRow, error) {
	var row SeriesRow
	if err := db.GetContext(ctx, &row, "SELECT * FROM series WHERE `id` = ?", seriesID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error Get series by id=%d: %w", seriesID, err)
	}
	return &row, nil
}

func paramID(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// GET /api/admin/series

func apiAdminSeriesListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		SeriesRow
		AvgRating sql.NullFloat64 `db:"avg_rating"`
		Genres    sql.NullString  `db:"genres"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT s.id, s.name, s.episode_count, s.original_language,
		        AVG(f.rating) AS avg_rating,
		        GROUP_CONCAT(DISTINCT g.genre) AS genres
		 FROM series s
		 LEFT JOIN feedback f ON s.id = f.series_id
		 LEFT JOIN series_genre g ON s.id = g.series_id
		 GROUP BY s.id
		 ORDER BY s.id DESC`,
	); err != nil {
		c.Logger().Errorf("error Select series summaries: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]AdminSeriesSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, AdminSeriesSummary{
			SeriesID:         row.ID,
			Name:             row.Name,
			EpisodeCount:     row.EpisodeCount,
			OriginalLanguage: row.OriginalLanguage,
			AvgRating:        nullFloatPtr(row.AvgRating),
			Genres:           row.Genres.String,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// POST /api/admin/series

func apiAdminSeriesCreateHandler(c echo.Context) error {
	var req CreateSeriesRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to CreateSeriesRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.Name == "" || req.EpisodeCount <= 0 || req.OriginalLanguage == "" {
		return errorResponse(c, 400, "missing series information")
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
		"INSERT INTO series (`name`, `episode_count`, `original_language`) VALUES (?, ?, ?)",
		req.Name, req.EpisodeCount, req.OriginalLanguage,
	)
	if err != nil {
		c.Logger().Errorf("error Insert series by name=%s: %s", req.Name, err)
		return errorResponseDetails(c, 500, "failed to create series", err.Error())
	}
	seriesID64, err := result.LastInsertId()
	if err != nil {
		c.Logger().Errorf("error LastInsertId: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "series", "INSERT",
		fmt.Sprintf("INSERT INTO series (name, episode_count, original_language) VALUES ('%s', %d, '%s')", req.Name, req.EpisodeCount, req.OriginalLanguage),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusCreated, CreateSeriesResponse{
		Message:  "Series created successfully",
		SeriesID: int(seriesID64),
	})
}

// GET /api/admin/series/:seriesID

func apiAdminSeriesGetHandler(c echo.Context) error {
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

	detail := AdminSeriesDetail{
		SeriesID:         series.ID,
		Name:             series.Name,
		EpisodeCount:     series.EpisodeCount,
		OriginalLanguage: series.OriginalLanguage,
		Genres:           []string{},
		Subtitles:        []string{},
		Dubbings:         []string{},
		ReleaseCountries: []ReleaseCountry{},
	}
	if err := conn.SelectContext(ctx, &detail.Genres,
		"SELECT genre FROM series_genre WHERE series_id = ?", seriesID); err != nil {
		c.Logger().Errorf("error Select series_genre by series_id=%d: %s", seriesID, err)
		return errorResponse(c, 500, "internal server error")
	}
	if err := conn.SelectContext(ctx, &detail.Subtitles,
		"SELECT language FROM series_subtitle WHERE series_id = ?", seriesID); err != nil {
		c.Logger().Errorf("error Select series_subtitle by series_id=%d: %s", seriesID, err)
		return errorResponse(c, 500, "internal server error")
	}
	if err := conn.SelectContext(ctx, &detail.Dubbings,
		"SELECT language FROM series_dubbing WHERE series_id = ?", seriesID); err != nil {
		c.Logger().Errorf("error Select series_dubbing by series_id=%d: %s", seriesID, err)
		return errorResponse(c, 500, "internal server error")
	}

	var releases []struct {
		CountryID   int          `db:"country_id"`
		ReleaseDate sql.NullTime `db:"release_date"`
	}
	if err := conn.SelectContext(ctx, &releases,
		"SELECT country_id, release_date FROM series_release_country WHERE series_id = ?", seriesID); err != nil {
		c.Logger().Errorf("error Select series_release_country by series_id=%d: %s", seriesID, err)
		return errorResponse(c, 500, "internal server error")
	}
	for _, r := range releases {
		rc := ReleaseCountry{CountryID: r.CountryID}
		if r.ReleaseDate.Valid {
			rc.ReleaseDate = formatDate(r.ReleaseDate.Time)
		}
		detail.ReleaseCountries = append(detail.ReleaseCountries, rc)
	}

	return c.JSON(http.StatusOK, detail)
}

// PUT /api/admin/series/:seriesID
//
// Full replacement of the scalar row and all four association tables in
// one transaction. The FOR UPDATE lock on the series row serializes
// concurrent replaces of the same series.

func apiAdminSeriesUpdateHandler(c echo.Context) error {
	seriesID, err := paramID(c, "seriesID")
	if err != nil {
		return errorResponse(c, 400, "bad series id")
	}

	var req UpdateSeriesRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to UpdateSeriesRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.Name == "" || req.EpisodeCount <= 0 || req.OriginalLanguage == "" {
		return errorResponse(c, 400, "missing series information")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("error conn.BeginTxx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	var lockedID int
	if err := tx.GetContext(ctx, &lockedID,
		"SELECT id FROM series WHERE `id` = ? FOR UPDATE", seriesID); err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return errorResponse(c, 404, "series not found")
		}
		c.Logger().Errorf("error lock series by id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "failed to update series", err.Error())
	}

	if _, err := tx.ExecContext(
		ctx,
		"UPDATE series SET `name` = ?, `episode_count` = ?, `original_language` = ? WHERE `id` = ?",
		req.Name, req.EpisodeCount, req.OriginalLanguage, seriesID,
	); err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Update series by id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "failed to update series", err.Error())
	}

	// delete all association rows, then re-insert the new sets; an empty
	// input set leaves the table empty for this series
	if _, err := tx.ExecContext(ctx, "DELETE FROM series_genre WHERE series_id = ?", seriesID); err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete series_genre by series_id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "failed to update series", err.Error())
	}
	for _, genre := range req.Genres {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO series_genre (`series_id`, `genre`) VALUES (?, ?)", seriesID, genre); err != nil {
			tx.Rollback()
			c.Logger().Errorf("error Insert series_genre by series_id=%d, genre=%s: %s", seriesID, genre, err)
			return errorResponseDetails(c, 500, "failed to update series", err.Error())
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM series_subtitle WHERE series_id = ?", seriesID); err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete series_subtitle by series_id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "failed to update series", err.Error())
	}
	for _, language := range req.Subtitles {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO series_subtitle (`series_id`, `language`) VALUES (?, ?)", seriesID, language); err != nil {
			tx.Rollback()
			c.Logger().Errorf("error Insert series_subtitle by series_id=%d, language=%s: %s", seriesID, language, err)
			return errorResponseDetails(c, 500, "failed to update series", err.Error())
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM series_dubbing WHERE series_id = ?", seriesID); err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete series_dubbing by series_id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "failed to update series", err.Error())
	}
	for _, language := range req.Dubbings {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO series_dubbing (`series_id`, `language`) VALUES (?, ?)", seriesID, language); err != nil {
			tx.Rollback()
			c.Logger().Errorf("error Insert series_dubbing by series_id=%d, language=%s: %s", seriesID, language, err)
			return errorResponseDetails(c, 500, "failed to update series", err.Error())
		}
	}

	// duplicates in the input are preserved as duplicate rows
	if _, err := tx.ExecContext(ctx, "DELETE FROM series_release_country WHERE series_id = ?", seriesID); err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete series_release_country by series_id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "failed to update series", err.Error())
	}
	for _, rc := range req.ReleaseCountries {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO series_release_country (`series_id`, `country_id`, `release_date`) VALUES (?, ?, ?)",
			seriesID, rc.CountryID, rc.ReleaseDate); err != nil {
			tx.Rollback()
			c.Logger().Errorf("error Insert series_release_country by series_id=%d, country_id=%d: %s", seriesID, rc.CountryID, err)
			return errorResponseDetails(c, 500, "failed to update series", err.Error())
		}
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("error tx.Commit: %s", err)
		return errorResponseDetails(c, 500, "failed to update series", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "series", "UPDATE",
		fmt.Sprintf("UPDATE series SET name, episode_count, original_language WHERE id = %d; replaced association rows", seriesID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Series %d updated successfully.", seriesID),
	})
}

// DELETE /api/admin/series/:seriesID
//
// Dependents go first, then the series row, all in one transaction.

func apiAdminSeriesDeleteHandler(c echo.Context) error {
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

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("error conn.BeginTxx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	for _, stmt := range []string{
		"DELETE FROM series_genre WHERE series_id = ?",
		"DELETE FROM series_subtitle WHERE series_id = ?",
		"DELETE FROM series_dubbing WHERE series_id = ?",
		"DELETE FROM series_release_country WHERE series_id = ?",
		"DELETE FROM feedback WHERE series_id = ?",
		"DELETE FROM episode WHERE series_id = ?",
		"DELETE FROM contract WHERE series_id = ?",
		"DELETE FROM series WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, seriesID); err != nil {
			tx.Rollback()
			c.Logger().Errorf("error %q by series_id=%d: %s", stmt, seriesID, err)
			return errorResponseDetails(c, 500, "failed to delete series", err.Error())
		}
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("error tx.Commit: %s", err)
		return errorResponseDetails(c, 500, "failed to delete series", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "series", "DELETE",
		fmt.Sprintf("DELETE FROM series WHERE id = %d (cascade: associations, feedback, episodes, contracts)", seriesID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Series %d and all related data deleted successfully.", seriesID),
	})
}

// GET /api/admin/series/:seriesID/episodes

func apiAdminEpisodeListHandler(c echo.Context) error {
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

	var rows []EpisodeRow
	if err := conn.SelectContext(ctx, &rows,
		"SELECT * FROM episode WHERE series_id = ? ORDER BY episode_number", seriesID); err != nil {
		c.Logger().Errorf("error Select episode by series_id=%d: %s", seriesID, err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	episodes := make([]Episode, 0, len(rows))
	for _, row := range rows {
		episodes = append(episodes, Episode{
			EpisodeID:     row.ID,
			EpisodeNumber: row.EpisodeNumber,
			ScheduleStart: row.ScheduleStart,
			ScheduleEnd:   row.ScheduleEnd,
			ViewerCount:   row.ViewerCount,
			Interrupted:   row.Interrupted,
		})
	}
	return c.JSON(http.StatusOK, episodes)
}

// POST /api/admin/series/:seriesID/episodes

func apiAdminEpisodeCreateHandler(c echo.Context) error {
	seriesID, err := paramID(c, "seriesID")
	if err != nil {
		return errorResponse(c, 400, "bad series id")
	}

	var req EpisodeRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to EpisodeRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.EpisodeNumber <= 0 || req.ScheduleStart == "" || req.ScheduleEnd == "" {
		return errorResponse(c, 400, "missing episode data")
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
		"INSERT INTO episode (`series_id`, `episode_number`, `schedule_start`, `schedule_end`, `viewer_count`, `interrupted`) VALUES (?, ?, ?, ?, ?, ?)",
		seriesID, req.EpisodeNumber, req.ScheduleStart, req.ScheduleEnd, req.ViewerCount, req.Interrupted,
	); err != nil {
		c.Logger().Errorf("error Insert episode by series_id=%d, episode_number=%d: %s", seriesID, req.EpisodeNumber, err)
		return errorResponseDetails(c, 500, "failed to add episode", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "episode", "INSERT",
		fmt.Sprintf("INSERT INTO episode (series_id=%d, episode_number=%d)", seriesID, req.EpisodeNumber),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Episode added"})
}

// PUT /api/admin/episodes/:episodeID

func apiAdminEpisodeUpdateHandler(c echo.Context) error {
	episodeID, err := paramID(c, "episodeID")
	if err != nil {
		return errorResponse(c, 400, "bad episode id")
	}

	var req EpisodeRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to EpisodeRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.EpisodeNumber <= 0 || req.ScheduleStart == "" || req.ScheduleEnd == "" {
		return errorResponse(c, 400, "missing episode data")
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
		"UPDATE episode SET `episode_number` = ?, `schedule_start` = ?, `schedule_end` = ?, `viewer_count` = ?, `interrupted` = ? WHERE `id` = ?",
		req.EpisodeNumber, req.ScheduleStart, req.ScheduleEnd, req.ViewerCount, req.Interrupted, episodeID,
	)
	if err != nil {
		c.Logger().Errorf("error Update episode by id=%d: %s", episodeID, err)
		return errorResponseDetails(c, 500, "failed to update episode", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "episode not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "episode", "UPDATE",
		fmt.Sprintf("UPDATE episode WHERE id = %d", episodeID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Episode updated"})
}

// DELETE /api/admin/episodes/:episodeID

func apiAdminEpisodeDeleteHandler(c echo.Context) error {
	episodeID, err := paramID(c, "episodeID")
	if err != nil {
		return errorResponse(c, 400, "bad episode id")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, "DELETE FROM episode WHERE `id` = ?", episodeID)
	if err != nil {
		c.Logger().Errorf("error Delete episode by id=%d: %s", episodeID, err)
		return errorResponseDetails(c, 500, "failed to delete episode", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "episode not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "episode", "DELETE",
		fmt.Sprintf("DELETE FROM episode WHERE id = %d", episodeID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Episode deleted"})
}
