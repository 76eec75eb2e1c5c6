package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "fichedesk_session"
	// ContextKeySession is where Auth stores the *domain.Session.
	ContextKeySession = "session"
)

// SessionParser decodes a session token; nil means no valid session.
type SessionParser interface {
	ParseSession(token string) *domain.Session
}

// Auth resolves the session from the cookie or a Bearer header and injects it
// into the context. Requests without a valid session get 401.
func Auth(parser SessionParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := parser.ParseSession(TokenFromRequest(c))
			if session == nil {
				return domain.ErrUnauthenticated
			}

			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// TokenFromRequest prefers the session cookie and falls back to an
// "Authorization: Bearer" header. It returns "" when neither is present.
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionFromContext returns the session injected by Auth, or nil.
func SessionFromContext(c echo.Context) *domain.Session {
	session, _ := c.Get(ContextKeySession).(*domain.Session)
	return session
}
