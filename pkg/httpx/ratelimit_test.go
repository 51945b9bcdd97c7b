package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func fromIP(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":12345"
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(fromIP("192.168.1.1")))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := fromIP("192.168.1.1")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := fromIP("192.168.1.1")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestUserIDKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "", httpx.UserIDKeyExtractor(req))

	req = req.WithContext(httpx.ContextWithUserID(req.Context(), "user-1"))
	require.Equal(t, "user-1", httpx.UserIDKeyExtractor(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for i := range 3 {
			require.Equal(t, http.StatusOK, serve(h, fromIP("192.168.1.1")).Code, "request %d should succeed", i+1)
		}

		rec := serve(h, fromIP("192.168.1.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))

		var body httpx.ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Contains(t, body.Error, "Too many requests")
	})

	t.Run("different keys are tracked separately", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitByIP(config)(okHandler)

		require.Equal(t, http.StatusOK, serve(h, fromIP("10.0.0.1")).Code)
		require.Equal(t, http.StatusTooManyRequests, serve(h, fromIP("10.0.0.1")).Code)
		require.Equal(t, http.StatusOK, serve(h, fromIP("10.0.0.2")).Code)
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(config, func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			require.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		}
	})

	t.Run("limits by user when authenticated", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitByUser(config)(okHandler)

		asUser := func(id string) *http.Request {
			req := fromIP("10.0.0.1")
			return req.WithContext(httpx.ContextWithUserID(req.Context(), id))
		}

		require.Equal(t, http.StatusOK, serve(h, asUser("u1")).Code)
		require.Equal(t, http.StatusTooManyRequests, serve(h, asUser("u1")).Code)
		require.Equal(t, http.StatusOK, serve(h, asUser("u2")).Code)
	})
}

func TestRateLimitByUserFallsBackToIP(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := httpx.RateLimitByUser(config)(okHandler)

	require.Equal(t, http.StatusOK, serve(h, fromIP("10.0.0.9")).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, fromIP("10.0.0.9")).Code)

	// A user id equal to the address still gets its own bucket.
	req := fromIP("10.0.0.9")
	req = req.WithContext(httpx.ContextWithUserID(req.Context(), "10.0.0.9"))
	require.Equal(t, http.StatusOK, serve(h, req).Code)
}

func TestRateLimitRefills(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 20, Window: time.Second, Burst: 1}
	h := httpx.RateLimitByIP(config)(okHandler)

	require.Equal(t, http.StatusOK, serve(h, fromIP("10.1.1.1")).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, fromIP("10.1.1.1")).Code)

	require.Eventually(t, func() bool {
		return serve(h, fromIP("10.1.1.1")).Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestRateLimitProfiles(t *testing.T) {
	profiles := map[string]httpx.RateLimitConfig{
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"lenient":  httpx.LenientLimit,
		"public":   httpx.PublicLimit,
	}

	for name, config := range profiles {
		t.Run(name, func(t *testing.T) {
			require.Greater(t, config.RequestsPerWindow, 0)
			require.Greater(t, config.Window, time.Duration(0))
			require.Greater(t, config.Burst, 0)
		})
	}

	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaultConfig := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	tests := []struct {
		name string
		env  map[string]string
		want httpx.RateLimitConfig
	}{
		{
			name: "no env vars uses defaults",
			want: defaultConfig,
		},
		{
			name: "override all parameters",
			env: map[string]string{
				"RATELIMIT_TEST_REQUESTS":   "200",
				"RATELIMIT_TEST_WINDOW_SEC": "30",
				"RATELIMIT_TEST_BURST":      "250",
			},
			want: httpx.RateLimitConfig{RequestsPerWindow: 200, Window: 30 * time.Second, Burst: 250},
		},
		{
			name: "invalid values use defaults",
			env: map[string]string{
				"RATELIMIT_TEST_REQUESTS":   "invalid",
				"RATELIMIT_TEST_WINDOW_SEC": "-10",
				"RATELIMIT_TEST_BURST":      "0",
			},
			want: defaultConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.Equal(t, tt.want, httpx.ParseRateLimitFromEnv("TEST", defaultConfig))
		})
	}
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 1000000, Window: time.Minute, Burst: 1000}
	h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)
	req := fromIP("192.168.1.1")

	for b.Loop() {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
