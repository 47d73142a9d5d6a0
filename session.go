package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	roleAdmin  = "admin"
	roleViewer = "viewer"

	contextKeyUser = "session_user"
)

func getSession(r *http.Request) (*sessions.Session, error) {
	session, err := sessionStore.Get(r, sessionCookieName)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func newSession(r *http.Request) (*sessions.Session, error) {
	session, err := sessionStore.New(r, sessionCookieName)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func errorResponse(c echo.Context, code int, message string) error {
	c.Logger().Debugf("error: status=%d, message=%s", code, message)
	return c.JSON(code, ErrorResponse{Error: message})
}

func errorResponseDetails(c echo.Context, code int, message string, details string) error {
	c.Logger().Debugf("error: status=%d, message=%s, details=%s", code, message, details)
	return c.JSON(code, ErrorResponse{Error: message, Details: details})
}

// currentSession returns the logged-in user attached to the request, or
// nil when no session is established.
func currentSession(c echo.Context) (*SessionUser, error) {
	sess, err := getSession(c.Request())
	if err != nil {
		return nil, fmt.Errorf("error getSession: %w", err)
	}
	userID, ok := sess.Values["user_id"].(int)
	if !ok {
		return nil, nil
	}
	role, _ := sess.Values["role"].(string)
	username, _ := sess.Values["username"].(string)
	displayName, _ := sess.Values["display_name"].(string)
	return &SessionUser{
		UserID:      userID,
		Role:        role,
		Username:    username,
		DisplayName: displayName,
	}, nil
}

// establishSession writes a fresh session record, replacing any prior
// state carried by the cookie.
func establishSession(c echo.Context, user SessionUser) error {
	sess, err := newSession(c.Request())
	if err != nil {
		return fmt.Errorf("error newSession: %w", err)
	}
	sess.Values["user_id"] = user.UserID
	sess.Values["role"] = user.Role
	sess.Values["username"] = user.Username
	sess.Values["display_name"] = user.DisplayName
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("error Save to session: %w", err)
	}
	return nil
}

func clearSession(c echo.Context) error {
	sess, err := getSession(c.Request())
	if err != nil {
		return fmt.Errorf("error getSession: %w", err)
	}
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("error Save to session: %w", err)
	}
	return nil
}

// adminRequired rejects the request before the handler runs unless the
// session carries the admin role.
func adminRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentSession(c)
		if err != nil {
			c.Logger().Errorf("error currentSession: %s", err)
			return errorResponse(c, 500, "internal server error")
		}
		if user == nil || user.Role != roleAdmin {
			return errorResponse(c, 403, "access denied. admin role required")
		}
		c.Set(contextKeyUser, user)
		return next(c)
	}
}

// viewerRequired is the viewer-only counterpart of adminRequired. The two
// guards are deliberately independent; there is no either-role variant.
func viewerRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentSession(c)
		if err != nil {
			c.Logger().Errorf("error currentSession: %s", err)
			return errorResponse(c, 500, "internal server error")
		}
		if user == nil || user.Role != roleViewer {
			return errorResponse(c, 403, "access denied. viewer role required")
		}
		c.Set(contextKeyUser, user)
		return next(c)
	}
}

func sessionUser(c echo.Context) *SessionUser {
	user, _ := c.Get(contextKeyUser).(*SessionUser)
	return user
}
