package http_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/market/pkg/marketsdk"
	"github.com/stretchr/testify/require"
)

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodGet, "/livez", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var live marketsdk.HealthResponse
	decode(t, rec, &live)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	rec = env.do(t, http.MethodGet, "/readyz", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ready marketsdk.HealthResponse
	decode(t, rec, &ready)
	require.Equal(t, map[string]string{"database": "ok"}, ready.Checks)
}

func TestReadyzDegraded(t *testing.T) {
	env := newTestEnvWith(t, func(e *testEnv) {
		e.router.AddReadinessCheck("cache", downPinger{})
	})

	rec := env.do(t, http.MethodGet, "/readyz", nil, "", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var ready marketsdk.HealthResponse
	decode(t, rec, &ready)
	require.Equal(t, "degraded", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])
	require.Contains(t, ready.Checks["cache"], "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, false)
	env.signup(t, "alice")
	env.do(t, http.MethodGet, "/offers", nil, "", "")

	rec := env.do(t, http.MethodGet, "/metrics", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `route="GET /offers"`)
	require.Contains(t, body, `route="POST /user/signup"`)
	require.True(t, strings.Contains(body, "market_signups_total"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t, false)

	r := newRequest(t, http.MethodGet, "/livez", nil)
	r.Header.Set("X-Request-ID", "req-123")
	rec := serve(env, r)
	require.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
