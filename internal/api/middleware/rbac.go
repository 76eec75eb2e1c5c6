package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// Require rejects the request with 403 unless allowed(user) holds for the
// authenticated user. It must run after Auth. The predicates come from the
// domain access policy, e.g. Require(domain.CanDelete).
func Require(allowed func(domain.User) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFromContext(c)
			if session == nil {
				return domain.ErrUnauthenticated
			}
			if !allowed(session.User) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
