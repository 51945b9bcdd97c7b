package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/service"
	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/aussiebroadwan/market/pkg/slogx"
)

type userCtxKey struct{}

func contextWithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// userFromContext returns the user attached by authMiddleware.
func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}

// authMiddleware resolves the bearer token to a user and attaches it, and its
// id for RateLimitByUser, to the request context.
func authMiddleware(auth *service.AuthService, policy statusPolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract the token
			token, err := httpx.BearerToken(r)
			if err != nil {
				policy.writeAuthError(w, err)
				return
			}

			// 2. Resolve it
			u, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				policy.writeError(w, r, err)
				return
			}

			// 3. Attach the user
			ctx := contextWithUser(r.Context(), u)
			ctx = httpx.ContextWithUserID(ctx, u.ID)
			ctx = slogx.With(ctx, "user_id", u.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
