package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-coordinator/internal/auth"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/http/handlers"
	"delivery-coordinator/internal/http/middleware"
	"delivery-coordinator/internal/http/middleware/ratelimit"
	"delivery-coordinator/internal/http/router"
	"delivery-coordinator/internal/logx"
)

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool { return false }

func newRouter(t *testing.T, enforce bool, limiter ratelimit.Limiter) (http.Handler, *auth.TokenIssuer) {
	t.Helper()

	issuer := auth.NewTokenIssuer("router-secret", time.Hour)
	logger := logx.Nop()
	h := router.New(router.Deps{
		Base:         handlers.New(logger, nil),
		Auth:         handlers.NewAuthHandler(logger, nil),
		Requests:     handlers.NewRequestHandler(logger, nil, nil),
		Users:        handlers.NewUserHandler(logger, nil, nil),
		Authn:        middleware.NewAuthenticator(issuer, enforce, logger),
		LoginLimiter: ratelimit.New(logger, nil, limiter, "login"),
		Metrics:      middleware.NewHTTPMetrics(nil),
		Logger:       logger,
	})
	return h, issuer
}

func serve(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, true, nil)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/ping", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(h, http.MethodHead, "/healthcheck", "", "").Code)

	rr := serve(h, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"route not found"}`, rr.Body.String())
}

func TestRouter_APIRequiresToken(t *testing.T) {
	t.Parallel()

	h, issuer := newRouter(t, true, nil)
	courierTok, _, err := issuer.Issue(8, domain.RoleCourier)
	require.NoError(t, err)
	adminTok, _, err := issuer.Issue(1, domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, "/api/servicios/pendientes", "", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(h, http.MethodGet, "/api/servicios/pendientes", "", courierTok).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, http.MethodDelete, "/api/usuarios/3", "", courierTok).Code)

	// reaches the handler: body validation fails before any service call
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/api/servicios/asignar", `{}`, adminTok).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/api/servicios/actualizar", `{"requestId":1,"courierId":8,"newState":"pending"}`, courierTok).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodGet, "/api/servicios/cliente/abc", "", adminTok).Code)
}

func TestRouter_APIOpenWhenNotEnforced(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, false, nil)

	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/api/servicios", `{"clientId":0}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/api/usuarios", `{"role":"x"}`, "").Code)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, false, denyAll{})

	rr := serve(h, http.MethodPost, "/login", `{"user":"a","pass":"b"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// the limiter is scoped to /login only
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/register", `{}`, "").Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, false, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodGet, "/login", "", "").Code)
}
