package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
)

// ContextWithUserID records the authenticated user id for downstream
// middleware such as RateLimitByUser.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}
