package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fichedesk/dashboard/internal/api/middleware"
	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/service"
	"github.com/fichedesk/dashboard/internal/infrastructure/db/file"
)

const testPassword = "pw"

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *file.Store
}

func newTestServer(t *testing.T, limit LoginLimit) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	sophie, lucas := "u2", "u3"
	created := time.Now().UTC().Add(-time.Hour)
	store := file.NewStore(filepath.Join(t.TempDir(), "data.json"), zerolog.Nop())
	require.NoError(t, store.Save(context.Background(), &domain.Snapshot{
		Users: []domain.User{
			{ID: "u1", Name: "Claire Admin", Email: "admin@fichedesk.local", Role: domain.RoleAdmin, PasswordHash: string(hash)},
			{ID: "u2", Name: "Sophie Martin", Email: "sophie@fichedesk.local", Role: domain.RoleAdvisor, PasswordHash: string(hash)},
			{ID: "u3", Name: "Lucas Bernard", Email: "lucas@fichedesk.local", Role: domain.RoleAdvisor, PasswordHash: string(hash)},
		},
		Fiches: []domain.Fiche{
			{ID: "f1", ClientName: "Alice Smith", Product: domain.ProductAuto, Status: domain.StatusAssigned, AdvisorID: &sophie, CreatedAt: created},
			{ID: "f2", ClientName: "Bob Dupont", Product: domain.ProductMRH, Status: domain.StatusNew, CreatedAt: created.Add(-time.Minute)},
			{ID: "f3", ClientName: "Eve Martin", Product: domain.ProductRCPro, Status: domain.StatusClosed, AdvisorID: &lucas, CreatedAt: created.Add(-2 * time.Minute)},
		},
	}))

	log := zerolog.Nop()
	e := NewRouter(Dependencies{
		Auth:       service.NewAuthService(store, "router-test-secret", time.Hour, log),
		Fiches:     service.NewFicheService(store, service.Pagination{}, log),
		Users:      service.NewUserService(store),
		Analytics:  service.NewAnalyticsService(store, time.UTC, log),
		LoginLimit: limit,
		Logger:     log,
		Registry:   prometheus.NewRegistry(),
	})
	return &testServer{t: t, handler: e, store: store}
}

func (s *testServer) do(method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email string) *http.Cookie {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"`+testPassword+`"}`, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	s.t.Fatalf("no session cookie in login response")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_Unauthenticated(t *testing.T) {
	srv := newTestServer(t, LoginLimit{})

	for _, target := range []string{"/fiches", "/api/fiches", "/fiches/f1", "/users", "/analytics", "/auth/me"} {
		rec := srv.do(http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.JSONEq(t, `{"error":"unauthenticated"}`, rec.Body.String(), target)
	}

	bogus := &http.Cookie{Name: middleware.SessionCookie, Value: "forged"}
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/fiches", "", bogus).Code)
}

func TestRouter_Login(t *testing.T) {
	srv := newTestServer(t, LoginLimit{})

	rec := srv.do(http.MethodPost, "/api/auth/login", `{"email":"sophie@fichedesk.local","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())

	rec = srv.do(http.MethodPost, "/auth/login", `{"email":"nobody@fichedesk.local","password":"pw"}`, nil)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())

	rec = srv.do(http.MethodPost, "/auth/login", `{"email":"sophie@fichedesk.local"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cookie := srv.login("sophie@fichedesk.local")
	me := decode[map[string]map[string]any](t, srv.do(http.MethodGet, "/auth/me", "", cookie))
	assert.Equal(t, "u2", me["user"]["id"])
	assert.NotContains(t, me["user"], "password")
}

func TestRouter_BearerToken(t *testing.T) {
	srv := newTestServer(t, LoginLimit{})

	rec := srv.do(http.MethodPost, "/auth/login", `{"email":"admin@fichedesk.local","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[map[string]any](t, rec)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	out := httptest.NewRecorder()
	srv.handler.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)

	users := decode[[]map[string]any](t, out)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0]["id"])
	assert.NotContains(t, users[0], "role")
}

func TestRouter_AdvisorScope(t *testing.T) {
	srv := newTestServer(t, LoginLimit{})
	cookie := srv.login("sophie@fichedesk.local")

	list := decode[struct {
		Data []map[string]any `json:"data"`
		Meta map[string]int   `json:"meta"`
	}](t, srv.do(http.MethodGet, "/fiches", "", cookie))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "f1", list.Data[0]["id"])
	assert.Equal(t, 1, list.Meta["total"])

	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodGet, "/fiches/f3", "", cookie).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/fiches/nope", "", cookie).Code)

	// Status change on own fiche is allowed, reassignment is not.
	rec := srv.do(http.MethodPatch, "/fiches/f1", `{"status":"IN_PROGRESS"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "IN_PROGRESS", decode[map[string]any](t, rec)["status"])

	rec = srv.do(http.MethodPatch, "/fiches/f1", `{"advisorId":"u3"}`, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"access forbidden"}`, rec.Body.String())

	rec = srv.do(http.MethodPatch, "/fiches/f1", `{"status":"LOST"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Delete is admin-only and checked before existence.
	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodDelete, "/fiches/f1", "", cookie).Code)
	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodDelete, "/api/fiches/nope", "", cookie).Code)

	summary := decode[map[string]any](t, srv.do(http.MethodGet, "/analytics", "", cookie))
	assert.EqualValues(t, 1, summary["totalFiches"])
}

func TestRouter_AdminFlow(t *testing.T) {
	srv := newTestServer(t, LoginLimit{})
	cookie := srv.login("admin@fichedesk.local")

	rec := srv.do(http.MethodPatch, "/api/fiches/f2", `{"advisorId":"u3","status":"ASSIGNED"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "u3", decode[map[string]any](t, rec)["advisorId"])

	rec = srv.do(http.MethodPatch, "/fiches/f2", `{"advisorId":null}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[map[string]any](t, rec)
	assert.Nil(t, patched["advisorId"])
	assert.Equal(t, "ASSIGNED", patched["status"])

	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodDelete, "/fiches/nope", "", cookie).Code)
	rec = srv.do(http.MethodDelete, "/fiches/f3", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/fiches/f3", "", cookie).Code)

	list := decode[map[string]any](t, srv.do(http.MethodGet, "/fiches?limit=1&page=2", "", cookie))
	meta := list["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["total"])
	assert.EqualValues(t, 2, meta["totalPages"])

	summary := decode[map[string]any](t, srv.do(http.MethodGet, "/analytics", "", cookie))
	assert.EqualValues(t, 2, summary["totalFiches"])
	assert.Len(t, summary["monthlyData"], 6)
}

func TestRouter_Logout(t *testing.T) {
	srv := newTestServer(t, LoginLimit{})

	rec := srv.do(http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestRouter_LoginRateLimit(t *testing.T) {
	srv := newTestServer(t, LoginLimit{Rate: 0.001, Burst: 2})
	body := `{"email":"sophie@fichedesk.local","password":"wrong"}`

	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/auth/login", body, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/api/auth/login", body, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, srv.do(http.MethodPost, "/auth/login", body, nil).Code)
}

func TestRouter_OpsEndpoints(t *testing.T) {
	srv := newTestServer(t, LoginLimit{})

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/health/ready", "", nil).Code)

	srv.do(http.MethodGet, "/fiches", "", nil)
	rec := srv.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fichedesk_http_requests_total")

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/swagger/doc.json", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/nowhere", "", nil).Code)
}
