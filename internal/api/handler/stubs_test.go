package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fichedesk/dashboard/internal/api/middleware"
	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Session, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ParseSession(string) *domain.Session { return nil }

type stubFicheService struct {
	listFn   func(ctx context.Context, user domain.User, in ports.ListFichesInput) (*ports.ListFichesResult, error)
	getFn    func(ctx context.Context, user domain.User, id string) (*domain.Fiche, error)
	patchFn  func(ctx context.Context, user domain.User, id string, in ports.PatchFicheInput) (*domain.Fiche, error)
	deleteFn func(ctx context.Context, user domain.User, id string) error
}

func (s *stubFicheService) List(ctx context.Context, user domain.User, in ports.ListFichesInput) (*ports.ListFichesResult, error) {
	return s.listFn(ctx, user, in)
}

func (s *stubFicheService) Get(ctx context.Context, user domain.User, id string) (*domain.Fiche, error) {
	return s.getFn(ctx, user, id)
}

func (s *stubFicheService) Patch(ctx context.Context, user domain.User, id string, in ports.PatchFicheInput) (*domain.Fiche, error) {
	return s.patchFn(ctx, user, id, in)
}

func (s *stubFicheService) Delete(ctx context.Context, user domain.User, id string) error {
	return s.deleteFn(ctx, user, id)
}

type stubAnalyticsService struct {
	summary *ports.Summary
	err     error
}

func (s *stubAnalyticsService) Summary(context.Context, domain.User) (*ports.Summary, error) {
	return s.summary, s.err
}

type stubUserService struct {
	users []domain.User
}

func (s *stubUserService) ListAdvisors(context.Context) ([]domain.User, error) {
	return s.users, nil
}

var (
	adminUser   = domain.User{ID: "u1", Name: "Claire Admin", Email: "admin@fichedesk.local", Role: domain.RoleAdmin}
	advisorUser = domain.User{ID: "u2", Name: "Sophie Martin", Email: "sophie@fichedesk.local", Role: domain.RoleAdvisor}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context, optionally authenticated as user.
func newContext(e *echo.Echo, method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextKeySession, &domain.Session{ID: "s1", User: *user})
	}
	return c, rec
}
