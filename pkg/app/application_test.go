package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusmove/pkg/client"
	"campusmove/pkg/config"
	"campusmove/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler struct{}

func (testHandler) RegisterRoutes(r *httprouter.Router) {
	r.GET("/ping", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})
	r.GET("/boom", func(http.ResponseWriter, *http.Request, httprouter.Params) {
		panic("boom")
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		CORSAllowedOrigins: []string{"https://campus.example"},
		RateLimitRequests:  1000,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1024,
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		IdleTimeout:        time.Second,
		ShutdownTimeout:    time.Second,
		Log:                logger.Discard(),
		Client:             client.NewClient(),
	}
}

func newTestApp(checks ...ReadinessCheck) *Application {
	a := NewApplication(testConfig())
	a.SetApp(checks, testHandler{})
	return a
}

func TestHealthAndReady(t *testing.T) {
	a := newTestApp(
		ReadinessCheck{Name: "mongo", Check: func(context.Context) error { return nil }},
	)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ready","dependencies":{"mongo":"ok"}}`, rr.Body.String())
}

func TestReady_FailingDependency(t *testing.T) {
	a := newTestApp(
		ReadinessCheck{Name: "viewstate", Check: func(context.Context) error { return nil }},
		ReadinessCheck{Name: "mongo", Check: func(context.Context) error { return errors.New("no primary") }},
	)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"unavailable","dependencies":{"mongo":"error","viewstate":"ok"}}`, rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp()

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "campusmove_http_requests_total")
}

func TestAppStack(t *testing.T) {
	a := newTestApp()

	t.Run("request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rr := httptest.NewRecorder()
		a.Handler().ServeHTTP(rr, req)
		assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
	})

	t.Run("panic becomes 500", func(t *testing.T) {
		rr := httptest.NewRecorder()
		a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Internal server error")
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://campus.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rr := httptest.NewRecorder()
		a.Handler().ServeHTTP(rr, req)
		assert.Equal(t, "https://campus.example", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("non-json body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		a.Handler().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	})
}

func TestOnShutdown_ReverseOrder(t *testing.T) {
	a := newTestApp()
	var order []string
	a.OnShutdown("first", func() error { order = append(order, "first"); return nil })
	a.OnShutdown("second", func() error { order = append(order, "second"); return errors.New("ignored") })

	a.gracefulShutdown()
	assert.Equal(t, []string{"second", "first"}, order)
}
