package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// GET /api/admin/viewers

func apiAdminViewerListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		Account       int       `db:"account"`
		Username      string    `db:"username"`
		FirstName     string    `db:"first_name"`
		LastName      string    `db:"last_name"`
		City          string    `db:"city"`
		State         string    `db:"state"`
		MonthlyCharge float64   `db:"monthly_charge"`
		OpenDate      time.Time `db:"open_date"`
		CountryName   string    `db:"country_name"`
		FeedbackCount int       `db:"feedback_count"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT v.account, v.username, v.first_name, v.last_name, v.city, v.state,
		        v.monthly_charge, v.open_date, c.name AS country_name,
		        COUNT(f.series_id) AS feedback_count
		 FROM viewer v
		 JOIN country c ON v.country_id = c.id
		 LEFT JOIN feedback f ON v.account = f.account
		 GROUP BY v.account`,
	); err != nil {
		c.Logger().Errorf("error Select viewers: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]ViewerSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, ViewerSummary{
			Account:       row.Account,
			Username:      row.Username,
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			City:          row.City,
			State:         row.State,
			MonthlyCharge: row.MonthlyCharge,
			OpenDate:      formatDate(row.OpenDate),
			CountryName:   row.CountryName,
			FeedbackCount: row.FeedbackCount,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// GET /api/admin/viewers/:accountID

func apiAdminViewerGetHandler(c echo.Context) error {
	accountID, err := paramID(c, "accountID")
	if err != nil {
		return errorResponse(c, 400, "bad account id")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	viewer, err := getViewerByAccount(ctx, conn, accountID)
	if err != nil {
		c.Logger().Errorf("error getViewerByAccount: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if viewer == nil {
		return errorResponse(c, 404, "viewer not found")
	}

	return c.JSON(http.StatusOK, ViewerDetail{
		Account:       viewer.Account,
		Username:      viewer.Username,
		FirstName:     viewer.FirstName,
		LastName:      viewer.LastName,
		Street:        viewer.Street,
		City:          viewer.City,
		State:         viewer.State,
		Zipcode:       viewer.Zipcode,
		MonthlyCharge: viewer.MonthlyCharge,
		CountryID:     viewer.CountryID,
	})
}

// PUT /api/admin/viewers/:accountID

func apiAdminViewerUpdateHandler(c echo.Context) error {
	accountID, err := paramID(c, "accountID")
	if err != nil {
		return errorResponse(c, 400, "bad account id")
	}

	var req UpdateViewerRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to UpdateViewerRequest: %s", err)
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

	result, err := conn.ExecContext(
		ctx,
		"UPDATE viewer SET `street` = ?, `city` = ?, `state` = ?, `zipcode` = ?, `monthly_charge` = ?, `country_id` = ? WHERE `account` = ?",
		req.Street, req.City, req.State, req.Zipcode, req.MonthlyCharge, req.CountryID, accountID,
	)
	if err != nil {
		c.Logger().Errorf("error Update viewer by account=%d: %s", accountID, err)
		return errorResponseDetails(c, 500, "failed to update viewer", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "viewer not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "viewer", "UPDATE",
		"UPDATE viewer SET street, city, state, zipcode, monthly_charge, country_id WHERE account = ?",
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Viewer updated"})
}

// GET /api/admin/feedback
//
// Optional filters are conjunctive; absent parameters impose no
// constraint.

func apiAdminFeedbackListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	query := `SELECT f.account, f.series_id, f.rating, f.body, f.posted_on,
	                 s.name AS series_name, v.username
	          FROM feedback f
	          JOIN series s ON f.series_id = s.id
	          JOIN viewer v ON f.account = v.account`
	conditions := []string{}
	params := []interface{}{}
	if seriesID := c.QueryParam("series_id"); seriesID != "" {
		conditions = append(conditions, "f.series_id = ?")
		params = append(params, seriesID)
	}
	if rating := c.QueryParam("rating"); rating != "" {
		conditions = append(conditions, "f.rating = ?")
		params = append(params, rating)
	}
	if startDate := c.QueryParam("start_date"); startDate != "" {
		conditions = append(conditions, "f.posted_on >= ?")
		params = append(params, startDate)
	}
	if endDate := c.QueryParam("end_date"); endDate != "" {
		conditions = append(conditions, "f.posted_on <= ?")
		params = append(params, endDate)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var rows []struct {
		FeedbackRow
		SeriesName string `db:"series_name"`
		Username   string `db:"username"`
	}
	if err := conn.SelectContext(ctx, &rows, query, params...); err != nil {
		c.Logger().Errorf("error Select feedback: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]AdminFeedbackEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, AdminFeedbackEntry{
			Account:    row.Account,
			SeriesID:   row.SeriesID,
			SeriesName: row.SeriesName,
			Username:   row.Username,
			Rating:     row.Rating,
			Body:       row.Body,
			PostedOn:   formatDate(row.PostedOn),
		})
	}
	return c.JSON(http.StatusOK, result)
}

// DELETE /api/admin/feedback
//
// The feedback key is the (account, series_id) pair supplied in the body.

func apiAdminFeedbackDeleteHandler(c echo.Context) error {
	var req DeleteFeedbackRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to DeleteFeedbackRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.Account == 0 || req.SeriesID == 0 {
		return errorResponse(c, 400, "account and series_id are required")
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
		"DELETE FROM feedback WHERE `account` = ? AND `series_id` = ?",
		req.Account, req.SeriesID,
	)
	if err != nil {
		c.Logger().Errorf("error Delete feedback by account=%d, series_id=%d: %s", req.Account, req.SeriesID, err)
		return errorResponseDetails(c, 500, "failed to delete feedback", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "feedback not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "feedback", "DELETE",
		"DELETE FROM feedback WHERE account = ? AND series_id = ?",
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Feedback deleted"})
}

// GET /api/admin/stats

func apiAdminStatsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var stats StatsResponse
	if err := conn.GetContext(ctx, &stats.TotalSeries, "SELECT COUNT(*) FROM series"); err != nil {
		c.Logger().Errorf("error Count series: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	if err := conn.GetContext(ctx, &stats.TotalViewers, "SELECT COUNT(*) FROM viewer"); err != nil {
		c.Logger().Errorf("error Count viewer: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	if err := conn.GetContext(ctx, &stats.TotalFeedback, "SELECT COUNT(*) FROM feedback"); err != nil {
		c.Logger().Errorf("error Count feedback: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	if err := conn.GetContext(ctx, &stats.RecentFeedback,
		"SELECT COUNT(*) FROM feedback WHERE posted_on >= CURDATE() - INTERVAL 7 DAY"); err != nil {
		c.Logger().Errorf("error Count recent feedback: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	var top []struct {
		Name      string  `db:"name"`
		AvgRating float64 `db:"avg_rating"`
	}
	if err := conn.SelectContext(
		ctx,
		&top,
		`SELECT s.name, AVG(f.rating) AS avg_rating
		 FROM feedback f
		 JOIN series s ON f.series_id = s.id
		 GROUP BY s.id
		 ORDER BY avg_rating DESC
		 LIMIT 5`,
	); err != nil {
		c.Logger().Errorf("error Select top series: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}
	stats.TopSeries = make([]TopSeries, 0, len(top))
	for _, row := range top {
		stats.TopSeries = append(stats.TopSeries, TopSeries{Name: row.Name, AvgRating: row.AvgRating})
	}

	return c.JSON(http.StatusOK, stats)
}

// GET /api/admin/viewer-growth

func apiAdminViewerGrowthHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		Month      string `db:"month"`
		NewViewers int    `db:"new_viewers"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT DATE_FORMAT(open_date, '%Y-%m') AS month, COUNT(*) AS new_viewers
		 FROM viewer
		 GROUP BY DATE_FORMAT(open_date, '%Y-%m')
		 ORDER BY month`,
	); err != nil {
		c.Logger().Errorf("error Select viewer growth: %s", err)
		return errorResponseDetails(c, 500, "failed to fetch viewer growth", err.Error())
	}

	result := make([]ViewerGrowthEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, ViewerGrowthEntry{Month: row.Month, NewViewers: row.NewViewers})
	}
	return c.JSON(http.StatusOK, result)
}

// GET /api/admin/revenue-growth

func apiAdminRevenueGrowthHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		Month        string  `db:"month"`
		RevenueNew   float64 `db:"revenue_new"`
		RevenueTotal float64 `db:"revenue_total"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`WITH monthly AS (
		    SELECT DATE_FORMAT(open_date, '%Y-%m') AS month, SUM(monthly_charge) AS revenue_new
		    FROM viewer
		    GROUP BY DATE_FORMAT(open_date, '%Y-%m')
		),
		cumulative AS (
		    SELECT m1.month,
		           (SELECT SUM(m2.revenue_new) FROM monthly m2 WHERE m2.month <= m1.month) AS revenue_total
		    FROM monthly m1
		)
		SELECT m.month, m.revenue_new, c.revenue_total
		FROM monthly m
		JOIN cumulative c ON m.month = c.month
		ORDER BY m.month`,
	); err != nil {
		c.Logger().Errorf("error Select revenue growth: %s", err)
		return errorResponseDetails(c, 500, "failed to fetch revenue growth", err.Error())
	}

	result := make([]RevenueGrowthEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, RevenueGrowthEntry{
			Month:        row.Month,
			RevenueNew:   row.RevenueNew,
			RevenueTotal: row.RevenueTotal,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// GET /api/admin/history
//
// ULIDs sort by creation time, so ordering by the key is newest-first
// without a second index.

func apiAdminHistoryHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		AdminHistoryRow
		AdminName string `db:"admin_name"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT h.ulid, h.admin_id, h.acted_at, h.target_table, h.action, h.statement,
		        CONCAT(a.first_name, ' ', a.last_name) AS admin_name
		 FROM admin_history h
		 JOIN admin a ON h.admin_id = a.id
		 ORDER BY h.ulid DESC`,
	); err != nil {
		c.Logger().Errorf("error Select admin_history: %s", err)
		return errorResponseDetails(c, 500, "failed to load history", err.Error())
	}

	result := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, HistoryEntry{
			ULID:        row.ULID,
			AdminID:     row.AdminID,
			AdminName:   row.AdminName,
			ActedAt:     row.ActedAt,
			TargetTable: row.TargetTable,
			Action:      row.Action,
			Statement:   row.Statement,
		})
	}
	return c.JSON(http.StatusOK, result)
}
