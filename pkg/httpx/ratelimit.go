package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/market/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket refilled at RequestsPerWindow per
// Window, holding at most Burst tokens.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// every is the refill interval of one token.
func (c RateLimitConfig) every() rate.Limit {
	if c.RequestsPerWindow <= 0 || c.Window <= 0 {
		return rate.Inf
	}
	return rate.Every(c.Window / time.Duration(c.RequestsPerWindow))
}

// Route profiles. Each can be overridden with RATELIMIT_<NAME>_REQUESTS,
// RATELIMIT_<NAME>_WINDOW_SEC and RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards signup and login against credential stuffing.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit applies per user to offer publish, update and delete.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit covers the health probes.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}

	// PublicLimit covers the anonymous offer listing and fetch.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv overrides def with RATELIMIT_{prefix}_REQUESTS,
// RATELIMIT_{prefix}_WINDOW_SEC and RATELIMIT_{prefix}_BURST. Values that
// are not positive integers are ignored.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyExtractor groups requests into buckets. An empty key bypasses the
// limiter.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the client address, preferring the first hop of
// X-Forwarded-For, then X-Real-IP.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// UserIDKeyExtractor returns the id stored by ContextWithUserID.
func UserIDKeyExtractor(r *http.Request) string {
	id, _ := UserIDFromContext(r.Context())
	return id
}

// userOrIPKey buckets authenticated requests by user and the rest by
// address. The prefixes keep the two key spaces apart.
func userOrIPKey(r *http.Request) string {
	if id := UserIDKeyExtractor(r); id != "" {
		return "user:" + id
	}
	return "ip:" + IPKeyExtractor(r)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one bucket per key. Buckets idle for longer than idle
// are swept, at most once per idle period.
type limiterSet struct {
	cfg  RateLimitConfig
	idle time.Duration

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		cfg:       cfg,
		idle:      max(cfg.Window, 5*time.Minute),
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= s.idle {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) >= s.idle {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.cfg.every(), s.cfg.Burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimitMiddleware rejects requests over config with 429 and a
// Retry-After header.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	set := newLimiterSet(config)
	limitHeader := strconv.Itoa(config.RequestsPerWindow)
	windowHeader := config.Window.String()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			limiter := set.get(key, now)
			if limiter.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			// Peek at when the next token lands without consuming it.
			res := limiter.ReserveN(now, 1)
			retryAfter := max(int(res.DelayFrom(now).Round(time.Second)/time.Second), 1)
			res.CancelAt(now)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", limitHeader)
			w.Header().Set("X-RateLimit-Window", windowHeader)

			log.Warn("rate limit exceeded",
				"key", key,
				"route", r.Pattern,
				"retry_after", retryAfter,
			)
			WriteError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by client address.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByUser limits by authenticated user, falling back to the client
// address. Mount it after the authentication middleware.
func RateLimitByUser(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, userOrIPKey)
}
