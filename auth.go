package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const defaultMonthlyCharge = 9.99

// isDuplicateEntry reports a MySQL unique-key violation.
func isDuplicateEntry(err error) bool {
	merr, ok := err.(*mysql.MySQLError)
	return ok && merr.Number == 1062
}

func generatePasswordHash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 11)
	if err != nil {
		return "", fmt.Errorf("error bcrypt.GenerateFromPassword: %w", err)
	}
	return string(hashed), nil
}

func comparePasswordHash(password, passwordHash string) (bool, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return false, nil
		}
		return false, fmt.Errorf("error bcrypt.CompareHashAndPassword: %w", err)
	}
	return true, nil
}

func getAdminByUsername(ctx context.Context, db connOrTx, username string) (*AdminRow, error) {
	var row AdminRow
	if err := db.GetContext(ctx, &row, "SELECT * FROM admin WHERE `username` = ?", username); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error Get admin by username=%s: %w", username, err)
	}
	return &row, nil
}

func getViewerByUsername(ctx context.Context, db connOrTx, username string) (*ViewerRow, error) {
	var row ViewerRow
	if err := db.GetContext(ctx, &row, "SELECT * FROM viewer WHERE `username` = ?", username); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error Get viewer by username=%s: %w", username, err)
	}
	return &row, nil
}

func getViewerByAccount(ctx context.Context, db connOrTx, account int) (*ViewerRow, error) {
	var row ViewerRow
	if err := db.GetContext(ctx, &row, "SELECT * FROM viewer WHERE `account` = ?", account); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error Get viewer by account=%d: %w", account, err)
	}
	return &row, nil
}

// usernameTaken checks both identity spaces: a username must be unique
// across admins and viewers.
func usernameTaken(ctx context.Context, db connOrTx, username string) (bool, error) {
	viewer, err := getViewerByUsername(ctx, db, username)
	if err != nil {
		return false, err
	}
	if viewer != nil {
		return true, nil
	}
	admin, err := getAdminByUsername(ctx, db, username)
	if err != nil {
		return false, err
	}
	return admin != nil, nil
}

// POST /api/register

func apiRegisterHandler(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to RegisterRequest: %s", err)
		return errorResponse(c, 500, "failed to register")
	}

	if req.Username == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" ||
		req.Street == "" || req.City == "" || req.State == "" || req.Zipcode == "" || req.CountryID == 0 {
		return errorResponse(c, 400, "missing required fields")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "failed to register")
	}
	defer conn.Close()

	taken, err := usernameTaken(ctx, conn, req.Username)
	if err != nil {
		c.Logger().Errorf("error usernameTaken: %s", err)
		return errorResponse(c, 500, "failed to register")
	}
	if taken {
		return errorResponse(c, 409, "username already exists")
	}

	passwordHash, err := generatePasswordHash(req.Password)
	if err != nil {
		c.Logger().Errorf("error generatePasswordHash: %s", err)
		return errorResponse(c, 500, "failed to register")
	}

	openDate := time.Now()
	result, err := conn.ExecContext(
		ctx,
		"INSERT INTO viewer (`username`, `password_hash`, `first_name`, `last_name`, `street`, `city`, `state`, `zipcode`, `open_date`, `monthly_charge`, `country_id`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		req.Username, passwordHash, req.FirstName, req.LastName, req.Street, req.City, req.State, req.Zipcode, openDate, defaultMonthlyCharge, req.CountryID,
	)
	if err != nil {
		// the unique index is the backstop for a concurrent register
		if isDuplicateEntry(err) {
			return errorResponse(c, 409, "username already exists")
		}
		c.Logger().Errorf("error Insert viewer by username=%s: %s", req.Username, err)
		return errorResponseDetails(c, 500, "database error during registration", err.Error())
	}
	account64, err := result.LastInsertId()
	if err != nil {
		c.Logger().Errorf("error LastInsertId: %s", err)
		return errorResponse(c, 500, "failed to register")
	}

	user := SessionUser{
		UserID:      int(account64),
		Role:        roleViewer,
		Username:    req.Username,
		DisplayName: req.FirstName + " " + req.LastName,
	}
	if err := establishSession(c, user); err != nil {
		c.Logger().Errorf("error establishSession: %s", err)
		return errorResponse(c, 500, "failed to register")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "Registration successful",
		User:    user,
	})
}

// POST /api/login

func apiLoginHandler(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		c.Logger().Errorf("error Bind request to LoginRequest: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}
	if req.Username == "" || req.Password == "" {
		return errorResponse(c, 400, "username and password are required")
	}

	ctx := c.Request().Context()
	conn, err := db.Connx(ctx)
	if err != nil {
		c.Logger().Errorf("error db.Connx: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}
	defer conn.Close()

	// the admin identity space is consulted first; whichever space
	// matches fixes the role
	var user SessionUser
	var passwordHash string
	admin, err := getAdminByUsername(ctx, conn, req.Username)
	if err != nil {
		c.Logger().Errorf("error getAdminByUsername: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}
	if admin != nil {
		passwordHash = admin.PasswordHash
		user = SessionUser{
			UserID:      admin.ID,
			Role:        roleAdmin,
			Username:    admin.Username,
			DisplayName: admin.FirstName + " " + admin.LastName,
		}
	} else {
		viewer, err := getViewerByUsername(ctx, conn, req.Username)
		if err != nil {
			c.Logger().Errorf("error getViewerByUsername: %s", err)
			return errorResponse(c, 500, "failed to login (server error)")
		}
		if viewer == nil {
			return errorResponse(c, 401, "invalid username or password")
		}
		passwordHash = viewer.PasswordHash
		user = SessionUser{
			UserID:      viewer.Account,
			Role:        roleViewer,
			Username:    viewer.Username,
			DisplayName: viewer.FirstName + " " + viewer.LastName,
		}
	}

	matched, err := comparePasswordHash(req.Password, passwordHash)
	if err != nil {
		c.Logger().Errorf("error comparePasswordHash: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}
	if !matched {
		return errorResponse(c, 401, "invalid username or password")
	}

	if err := establishSession(c, user); err != nil {
		c.Logger().Errorf("error establishSession: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    user,
	})
}

// GET /api/me

func apiMeHandler(c echo.Context) error {
	user, err := currentSession(c)
	if err != nil {
		c.Logger().Errorf("error currentSession: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if user == nil {
		return c.JSON(http.StatusUnauthorized, MeResponse{LoggedIn: false})
	}
	return c.JSON(http.StatusOK, MeResponse{LoggedIn: true, User: user})
}

// POST /api/logout

func apiLogoutHandler(c echo.Context) error {
	if err := clearSession(c); err != nil {
		c.Logger().Errorf("error clearSession: %s", err)
		return errorResponse(c, 500, "failed to logout (server error)")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}
