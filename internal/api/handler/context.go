package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fichedesk/dashboard/internal/api/middleware"
	"github.com/fichedesk/dashboard/internal/core/domain"
)

// sessionUser returns the user of the session injected by the Auth
// middleware. A missing session means the route was mounted without Auth or
// the token did not verify; both surface as 401.
func sessionUser(c echo.Context) (domain.User, error) {
	session := middleware.SessionFromContext(c)
	if session == nil || session.User.ID == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return session.User, nil
}
