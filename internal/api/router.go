package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/fichedesk/dashboard/docs"
	"github.com/fichedesk/dashboard/internal/api/handler"
	"github.com/fichedesk/dashboard/internal/api/middleware"
	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

// APIPrefix is the second mount point of every route.
const APIPrefix = "/api"

// LoginLimit throttles POST /auth/login per client IP.
type LoginLimit struct {
	Rate  float64 // requests per second; <= 0 disables the limiter
	Burst int
}

// Dependencies is everything NewRouter needs to build the HTTP surface.
type Dependencies struct {
	Auth      ports.AuthService
	Fiches    ports.FicheService
	Users     ports.UserService
	Analytics ports.AnalyticsService
	// Probes are pinged by /health/ready, keyed by dependency name.
	Probes       map[string]ports.Pinger
	CookieSecure bool
	LoginLimit   LoginLimit
	Logger       zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	promConfig := echoprometheus.MiddlewareConfig{
		Namespace: "fichedesk",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	metricsHandler := echoprometheus.NewHandler()
	if deps.Registry != nil {
		promConfig.Registerer = deps.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Ops endpoints (no auth, root only) ---
	healthHandler := handler.NewHealthHandler(deps.Probes)
	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: are the backing stores reachable?
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	r := routes{
		auth:         handler.NewAuthHandler(deps.Auth, handler.CookieOptions{Secure: deps.CookieSecure}),
		fiches:       handler.NewFicheHandler(deps.Fiches),
		users:        handler.NewUserHandler(deps.Users),
		analytics:    handler.NewAnalyticsHandler(deps.Analytics),
		requireAuth:  middleware.Auth(deps.Auth),
		loginLimiter: loginLimiter(deps.LoginLimit),
	}

	r.mount(e.Group(""))
	r.mount(e.Group(APIPrefix))

	return e
}

type routes struct {
	auth      *handler.AuthHandler
	fiches    *handler.FicheHandler
	users     *handler.UserHandler
	analytics *handler.AnalyticsHandler

	requireAuth  echo.MiddlewareFunc
	loginLimiter echo.MiddlewareFunc
}

func (r routes) mount(g *echo.Group) {
	login := []echo.MiddlewareFunc{}
	if r.loginLimiter != nil {
		login = append(login, r.loginLimiter)
	}

	// --- Auth ---
	g.POST("/auth/login", r.auth.Login, login...)
	g.GET("/auth/me", r.auth.Me, r.requireAuth)
	g.POST("/auth/logout", r.auth.Logout)

	// --- Fiches ---
	g.GET("/fiches", r.fiches.List, r.requireAuth)
	g.GET("/fiches/:id", r.fiches.Get, r.requireAuth)
	g.PATCH("/fiches/:id", r.fiches.Patch, r.requireAuth)
	g.DELETE("/fiches/:id", r.fiches.Delete, r.requireAuth, middleware.Require(domain.CanDelete))

	// --- Directory & dashboard ---
	g.GET("/users", r.users.ListAdvisors, r.requireAuth)
	g.GET("/analytics", r.analytics.Summary, r.requireAuth)
}

// loginLimiter returns nil when the limit is disabled.
func loginLimiter(l LoginLimit) echo.MiddlewareFunc {
	if l.Rate <= 0 {
		return nil
	}
	burst := l.Burst
	if burst < 1 {
		burst = 1
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(l.Rate),
			Burst:     burst,
			ExpiresIn: 5 * time.Minute,
		}),
	})
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
