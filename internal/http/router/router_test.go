package router_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/kontragent-api/internal/auth"
	"github.com/straye-as/kontragent-api/internal/config"
	"github.com/straye-as/kontragent-api/internal/http/handler"
	"github.com/straye-as/kontragent-api/internal/http/middleware"
	"github.com/straye-as/kontragent-api/internal/http/router"
	"github.com/straye-as/kontragent-api/internal/repository"
	"github.com/straye-as/kontragent-api/internal/service"
	"github.com/straye-as/kontragent-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) *router.Router {
	t.Helper()

	db := testutil.SetupSQLiteDB(t)
	testutil.SeedRegion(t, db, 1, "Tver")
	logger := zap.NewNop()

	cfg := &config.Config{
		App:      config.AppConfig{Environment: "development"},
		Server:   config.ServerConfig{RequestTimeout: 5},
		Security: config.SecurityConfig{ContentTypeNosniff: true, FrameOptions: "DENY"},
		Auth:     config.AuthConfig{DefaultActorID: 1},
	}

	activity := service.NewActivityLogger(repository.NewActivityLogRepository(db), logger)
	dispatcher := service.NewDispatcher(service.Services{
		Lookups: service.NewLookupService(repository.NewLookupRepository(db), nil, logger),
		Notify:  service.NewNotifyService(activity),
	}, logger)

	return router.NewRouter(
		cfg,
		logger,
		db,
		auth.NewMiddleware(cfg.Auth.JWTSecret, cfg.Auth.DefaultActorID, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		handler.NewKontragentHandler(dispatcher, cfg.Auth.DefaultActorID, logger),
	)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Health(t *testing.T) {
	h := newRouter(t).Setup()

	w := get(h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = get(h, "/health/db")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestRouter_Readiness(t *testing.T) {
	rt := newRouter(t)
	rt.AddHealthCheck("cache", func(r *http.Request) error { return nil })
	h := rt.Setup()

	w := get(h, "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body["checks"], "cache")

	rt.AddHealthCheck("broken", func(r *http.Request) error { return errors.New("down") })
	w = get(rt.Setup(), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_ActionEndpoints(t *testing.T) {
	h := newRouter(t).Setup()

	for _, path := range []string{"/ajax/kontragent", "/api/v1/kontragent"} {
		w := get(h, path+"?action=get_regions")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"success":true,"data":[{"id":1,"name":"Tver"}]}`, w.Body.String())
	}

	w := get(h, "/ajax/kontragent?action=frobnicate")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Unknown action: frobnicate"}`, w.Body.String())
}

func TestRouter_NotFound(t *testing.T) {
	w := get(newRouter(t).Setup(), "/api/v1/customers")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not found: /api/v1/customers"}`, w.Body.String())
}
