package http

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/aussiebroadwan/market/pkg/marketsdk"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe pinging the database and, when enabled, the token cache.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	marketsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	marketsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, deps map[string]Pinger) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(deps))

	return func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]string, len(deps))
		overallStatus := "ok"
		statusCode := http.StatusOK

		for _, name := range names {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			err := deps[name].Ping(ctx)
			cancel()

			if err != nil {
				checks[name] = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		httpx.WriteJSON(w, statusCode, marketsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
