package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/market/internal/market/metrics"
	"github.com/aussiebroadwan/market/internal/market/service"
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/aussiebroadwan/market/pkg/slogx"

	_ "github.com/aussiebroadwan/market/api/market" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig holds the HTTP layer settings.
type RouterConfig struct {
	BuildVersion string

	// LegacyStatusCodes restores the status codes of the original API.
	LegacyStatusCodes bool

	// MaxBodyBytes bounds request bodies, uploads included.
	MaxBodyBytes int64

	// CORSOrigins lists allowed browser origins; empty allows any.
	CORSOrigins []string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	policy       statusPolicy
	maxBodyBytes int64

	readiness map[string]Pinger
	metrics   *metrics.Metrics
	media     http.Handler

	UserService  *service.UserService
	OfferService *service.OfferService
	AuthService  *service.AuthService
}

func NewRouter(cfg RouterConfig, st store.Store, m *metrics.Metrics, logger *slog.Logger) *Router {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = httpx.DefaultMaxBodyBytes
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: cfg.BuildVersion,
		startTime:    time.Now(),
		logger:       logger,
		policy:       statusPolicy{legacy: cfg.LegacyStatusCodes},
		maxBodyBytes: maxBody,
		readiness:    map[string]Pinger{"database": st},
		metrics:      m,
	}

	// Set default middleware chain. Metrics sits innermost so it reads the
	// pattern ServeMux stores on the request it was handed.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cfg.CORSOrigins),
	}
	if m != nil {
		r.middlewares = append(r.middlewares, m.Middleware)
	}

	return r
}

// AddReadinessCheck registers an extra dependency for /readyz. Call it
// before ApplyRoutes.
func (r *Router) AddReadinessCheck(name string, p Pinger) {
	r.readiness[name] = p
}

// ServeMedia exposes locally hosted uploads under /media/.
func (r *Router) ServeMedia(h http.Handler) {
	r.media = h
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerOffers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Market API
//	@version		0.1.0
//	@description	Marketplace backend: user signup and login, and offer listing, publishing, update and deletion.
//	@description
//	@description				Authenticated calls carry the token returned at signup.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/market
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Signup token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService:  r.UserService,
		policy:       r.policy,
		maxBodyBytes: r.maxBodyBytes,
	}

	// Signup and login - strict rate limit by IP (brute force prevention)
	r.Mux.Handle("POST /user/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /user/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerOffers() {
	h := &OffersHandler{
		OfferService: r.OfferService,
		policy:       r.policy,
		maxBodyBytes: r.maxBodyBytes,
	}
	authn := authMiddleware(r.AuthService, r.policy)

	// Public reads
	r.Mux.Handle("GET /offers",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /offer",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Mutations - moderate rate limit by user
	r.Mux.Handle("POST /offer/publish",
		httpx.Chain(http.HandlerFunc(h.HandlePublish),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /offer/update",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /offer/delete",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.readiness),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
	if r.media != nil {
		r.Mux.Handle("GET /media/", r.media)
	}
}
