package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GET /api/admin/phouses

func apiAdminPhouseListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		PhouseRow
		CountryName string `db:"country_name"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT p.*, c.name AS country_name
		 FROM phouse p
		 JOIN country c ON p.country_id = c.id`,
	); err != nil {
		c.Logger().Errorf("error Select phouse: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]Phouse, 0, len(rows))
	for _, row := range rows {
		result = append(result, Phouse{
			PhouseID:        row.ID,
			Name:            row.Name,
			Street:          row.Street,
			City:            row.City,
			State:           row.State,
			Zipcode:         row.Zipcode,
			EstablishedYear: row.EstablishedYear,
			CountryID:       row.CountryID,
			CountryName:     row.CountryName,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// POST /api/admin/phouses

func apiAdminPhouseCreateHandler(c echo.Context) error {
	var req PhouseRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to PhouseRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.Name == "" || req.CountryID == 0 {
		return errorResponse(c, 400, "missing production house information")
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
		"INSERT INTO phouse (`name`, `street`, `city`, `state`, `zipcode`, `established_year`, `country_id`) VALUES (?, ?, ?, ?, ?, ?, ?)",
		req.Name, req.Street, req.City, req.State, req.Zipcode, req.EstablishedYear, req.CountryID,
	); err != nil {
		c.Logger().Errorf("error Insert phouse by name=%s: %s", req.Name, err)
		return errorResponseDetails(c, 500, "failed to create production house", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "phouse", "INSERT",
		fmt.Sprintf("INSERT INTO phouse (name='%s')", req.Name),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Production house created"})
}

// PUT /api/admin/phouses/:phouseID

func apiAdminPhouseUpdateHandler(c echo.Context) error {
	phouseID, err := paramID(c, "phouseID")
	if err != nil {
		return errorResponse(c, 400, "bad production house id")
	}

	var req PhouseRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to PhouseRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.Name == "" || req.CountryID == 0 {
		return errorResponse(c, 400, "missing production house information")
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
		"UPDATE phouse SET `name` = ?, `street` = ?, `city` = ?, `state` = ?, `zipcode` = ?, `established_year` = ?, `country_id` = ? WHERE `id` = ?",
		req.Name, req.Street, req.City, req.State, req.Zipcode, req.EstablishedYear, req.CountryID, phouseID,
	)
	if err != nil {
		c.Logger().Errorf("error Update phouse by id=%d: %s", phouseID, err)
		return errorResponseDetails(c, 500, "failed to update production house", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "production house not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "phouse", "UPDATE",
		fmt.Sprintf("UPDATE phouse WHERE id = %d", phouseID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Production house updated"})
}

// DELETE /api/admin/phouses/:phouseID
//
// A production house holding contracts cannot be removed.

func apiAdminPhouseDeleteHandler(c echo.Context) error {
	phouseID, err := paramID(c, "phouseID")
	if err != nil {
		return errorResponse(c, 400, "bad production house id")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var one int
	err = conn.GetContext(ctx, &one, "SELECT 1 FROM contract WHERE phouse_id = ? LIMIT 1", phouseID)
	if err == nil {
		return errorResponse(c, 409, "cannot delete production house with active contracts")
	}
	if err != sql.ErrNoRows {
		c.Logger().Errorf("error Get contract by phouse_id=%d: %s", phouseID, err)
		return errorResponseDetails(c, 500, "failed to delete production house", err.Error())
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("error conn.BeginTxx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM collaboration WHERE phouse_id = ?", phouseID); err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete collaboration by phouse_id=%d: %s", phouseID, err)
		return errorResponseDetails(c, 500, "failed to delete production house", err.Error())
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM phouse WHERE `id` = ?", phouseID)
	if err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete phouse by id=%d: %s", phouseID, err)
		return errorResponseDetails(c, 500, "failed to delete production house", err.Error())
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		tx.Rollback()
		return errorResponse(c, 404, "production house not found")
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("error tx.Commit: %s", err)
		return errorResponseDetails(c, 500, "failed to delete production house", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "phouse", "DELETE",
		fmt.Sprintf("DELETE FROM phouse WHERE id = %d (cascade: collaborations)", phouseID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Production house deleted"})
}

// GET /api/admin/producers

func apiAdminProducerListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		ProducerRow
		CountryName string `db:"country_name"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT p.*, c.name AS country_name
		 FROM producer p
		 JOIN country c ON p.country_id = c.id`,
	); err != nil {
		c.Logger().Errorf("error Select producer: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]Producer, 0, len(rows))
	for _, row := range rows {
		result = append(result, Producer{
			ProducerID:  row.ID,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			Street:      row.Street,
			City:        row.City,
			State:       row.State,
			Zipcode:     row.Zipcode,
			Phone:       row.Phone,
			Email:       row.Email,
			CountryID:   row.CountryID,
			CountryName: row.CountryName,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// POST /api/admin/producers

func apiAdminProducerCreateHandler(c echo.Context) error {
	var req ProducerRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to ProducerRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.FirstName == "" || req.LastName == "" || req.CountryID == 0 {
		return errorResponse(c, 400, "missing producer information")
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
		"INSERT INTO producer (`first_name`, `last_name`, `street`, `city`, `state`, `zipcode`, `phone`, `email`, `country_id`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		req.FirstName, req.LastName, req.Street, req.City, req.State, req.Zipcode, req.Phone, req.Email, req.CountryID,
	); err != nil {
		c.Logger().Errorf("error Insert producer by name=%s %s: %s", req.FirstName, req.LastName, err)
		return errorResponseDetails(c, 500, "failed to create producer", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "producer", "INSERT",
		fmt.Sprintf("INSERT INTO producer (first_name='%s', last_name='%s')", req.FirstName, req.LastName),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Producer created"})
}

// PUT /api/admin/producers/:producerID

func apiAdminProducerUpdateHandler(c echo.Context) error {
	producerID, err := paramID(c, "producerID")
	if err != nil {
		return errorResponse(c, 400, "bad producer id")
	}

	var req ProducerRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to ProducerRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.FirstName == "" || req.LastName == "" || req.CountryID == 0 {
		return errorResponse(c, 400, "missing producer information")
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
		"UPDATE producer SET `first_name` = ?, `last_name` = ?, `street` = ?, `city` = ?, `state` = ?, `zipcode` = ?, `phone` = ?, `email` = ?, `country_id` = ? WHERE `id` = ?",
		req.FirstName, req.LastName, req.Street, req.City, req.State, req.Zipcode, req.Phone, req.Email, req.CountryID, producerID,
	)
	if err != nil {
		c.Logger().Errorf("error Update producer by id=%d: %s", producerID, err)
		return errorResponseDetails(c, 500, "failed to update producer", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "producer not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "producer", "UPDATE",
		fmt.Sprintf("UPDATE producer WHERE id = %d", producerID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Producer updated"})
}

// DELETE /api/admin/producers/:producerID

func apiAdminProducerDeleteHandler(c echo.Context) error {
	producerID, err := paramID(c, "producerID")
	if err != nil {
		return errorResponse(c, 400, "bad producer id")
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
	if _, err := tx.ExecContext(ctx, "DELETE FROM collaboration WHERE producer_id = ?", producerID); err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete collaboration by producer_id=%d: %s", producerID, err)
		return errorResponseDetails(c, 500, "failed to delete producer", err.Error())
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM producer WHERE `id` = ?", producerID)
	if err != nil {
		tx.Rollback()
		c.Logger().Errorf("error Delete producer by id=%d: %s", producerID, err)
		return errorResponseDetails(c, 500, "failed to delete producer", err.Error())
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		tx.Rollback()
		return errorResponse(c, 404, "producer not found")
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("error tx.Commit: %s", err)
		return errorResponseDetails(c, 500, "failed to delete producer", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "producer", "DELETE",
		fmt.Sprintf("DELETE FROM producer WHERE id = %d (cascade: collaborations)", producerID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Producer deleted"})
}

// GET /api/admin/collaborations

func apiAdminCollaborationListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		CollaborationRow
		ProducerName string `db:"producer_name"`
		PhouseName   string `db:"phouse_name"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT co.producer_id, co.phouse_id,
		        CONCAT(p.first_name, ' ', p.last_name) AS producer_name,
		        ph.name AS phouse_name
		 FROM collaboration co
		 JOIN producer p ON co.producer_id = p.id
		 JOIN phouse ph ON co.phouse_id = ph.id`,
	); err != nil {
		c.Logger().Errorf("error Select collaboration: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]Collaboration, 0, len(rows))
	for _, row := range rows {
		result = append(result, Collaboration{
			ProducerID:   row.ProducerID,
			PhouseID:     row.PhouseID,
			ProducerName: row.ProducerName,
			PhouseName:   row.PhouseName,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// POST /api/admin/collaborations

func apiAdminCollaborationCreateHandler(c echo.Context) error {
	var req CollaborationRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to CollaborationRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.ProducerID == 0 || req.PhouseID == 0 {
		return errorResponse(c, 400, "producer_id and phouse_id are required")
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
		"INSERT INTO collaboration (`producer_id`, `phouse_id`) VALUES (?, ?)",
		req.ProducerID, req.PhouseID,
	); err != nil {
		if isDuplicateEntry(err) {
			return errorResponse(c, 409, "collaboration already exists")
		}
		c.Logger().Errorf("error Insert collaboration by producer_id=%d, phouse_id=%d: %s", req.ProducerID, req.PhouseID, err)
		return errorResponseDetails(c, 500, "failed to add collaboration", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "collaboration", "INSERT",
		fmt.Sprintf("INSERT INTO collaboration (producer_id=%d, phouse_id=%d)", req.ProducerID, req.PhouseID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Collaboration added"})
}

// DELETE /api/admin/collaborations

func apiAdminCollaborationDeleteHandler(c echo.Context) error {
	var req CollaborationRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to CollaborationRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.ProducerID == 0 || req.PhouseID == 0 {
		return errorResponse(c, 400, "producer_id and phouse_id are required")
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
		"DELETE FROM collaboration WHERE `producer_id` = ? AND `phouse_id` = ?",
		req.ProducerID, req.PhouseID,
	)
	if err != nil {
		c.Logger().Errorf("error Delete collaboration by producer_id=%d, phouse_id=%d: %s", req.ProducerID, req.PhouseID, err)
		return errorResponseDetails(c, 500, "failed to remove collaboration", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "collaboration not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "collaboration", "DELETE",
		fmt.Sprintf("DELETE FROM collaboration WHERE producer_id = %d AND phouse_id = %d", req.ProducerID, req.PhouseID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Collaboration removed"})
}

// GET /api/admin/contracts

func apiAdminContractListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	var rows []struct {
		ContractRow
		SeriesName string `db:"series_name"`
		PhouseName string `db:"phouse_name"`
	}
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT con.*, s.name AS series_name, p.name AS phouse_name
		 FROM contract con
		 JOIN series s ON con.series_id = s.id
		 JOIN phouse p ON con.phouse_id = p.id`,
	); err != nil {
		c.Logger().Errorf("error Select contract: %s", err)
		return errorResponseDetails(c, 500, "database query failed", err.Error())
	}

	result := make([]Contract, 0, len(rows))
	for _, row := range rows {
		result = append(result, Contract{
			ContractID:   row.ID,
			IssuedDate:   formatDate(row.IssuedDate),
			EpisodePrice: row.EpisodePrice,
			Renewable:    row.Renewable,
			PhouseID:     row.PhouseID,
			PhouseName:   row.PhouseName,
			SeriesID:     row.SeriesID,
			SeriesName:   row.SeriesName,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// POST /api/admin/contracts

func apiAdminContractCreateHandler(c echo.Context) error {
	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to ContractRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.IssuedDate == "" || req.EpisodePrice <= 0 || req.PhouseID == 0 || req.SeriesID == 0 {
		return errorResponse(c, 400, "missing contract information")
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
		"INSERT INTO contract (`issued_date`, `episode_price`, `renewable`, `phouse_id`, `series_id`) VALUES (?, ?, ?, ?, ?)",
		req.IssuedDate, req.EpisodePrice, req.Renewable, req.PhouseID, req.SeriesID,
	); err != nil {
		c.Logger().Errorf("error Insert contract by phouse_id=%d, series_id=%d: %s", req.PhouseID, req.SeriesID, err)
		return errorResponseDetails(c, 500, "failed to create contract", err.Error())
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "contract", "INSERT",
		fmt.Sprintf("INSERT INTO contract (phouse_id=%d, series_id=%d)", req.PhouseID, req.SeriesID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Contract created"})
}

// PUT /api/admin/contracts/:contractID

func apiAdminContractUpdateHandler(c echo.Context) error {
	contractID, err := paramID(c, "contractID")
	if err != nil {
		return errorResponse(c, 400, "bad contract id")
	}

	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to ContractRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if req.IssuedDate == "" || req.EpisodePrice <= 0 || req.PhouseID == 0 || req.SeriesID == 0 {
		return errorResponse(c, 400, "missing contract information")
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
		"UPDATE contract SET `issued_date` = ?, `episode_price` = ?, `renewable` = ?, `phouse_id` = ?, `series_id` = ? WHERE `id` = ?",
		req.IssuedDate, req.EpisodePrice, req.Renewable, req.PhouseID, req.SeriesID, contractID,
	)
	if err != nil {
		c.Logger().Errorf("error Update contract by id=%d: %s", contractID, err)
		return errorResponseDetails(c, 500, "failed to update contract", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "contract not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "contract", "UPDATE",
		fmt.Sprintf("UPDATE contract WHERE id = %d", contractID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Contract updated"})
}

// DELETE /api/admin/contracts/:contractID

func apiAdminContractDeleteHandler(c echo.Context) error {
	contractID, err := paramID(c, "contractID")
	if err != nil {
		return errorResponse(c, 400, "bad contract id")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, "DELETE FROM contract WHERE `id` = ?", contractID)
	if err != nil {
		c.Logger().Errorf("error Delete contract by id=%d: %s", contractID, err)
		return errorResponseDetails(c, 500, "failed to delete contract", err.Error())
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errorResponse(c, 404, "contract not found")
	}

	if err := recordAdminAction(ctx, conn, sessionUser(c).UserID, "contract", "DELETE",
		fmt.Sprintf("DELETE FROM contract WHERE id = %d", contractID),
	); err != nil {
		c.Logger().Errorf("error recordAdminAction: %s", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Contract deleted"})
}
