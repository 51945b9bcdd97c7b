package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/market/pkg/marketsdk"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		legacy     bool
		header     string
		status     int
		bareString bool
	}{
		{"missing header", false, "", http.StatusUnauthorized, false},
		{"missing header legacy", true, "", http.StatusBadRequest, false},
		{"wrong scheme", false, "Basic abc", http.StatusUnauthorized, false},
		{"wrong scheme legacy", true, "Basic abc", http.StatusBadRequest, false},
		{"unknown token", false, "Bearer nope", http.StatusUnauthorized, true},
		{"unknown token legacy", true, "Bearer nope", http.StatusUnauthorized, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.legacy)

			r := newRequest(t, http.MethodPut, "/offer/update", strings.NewReader(`{"id":"x","color":"red"}`))
			r.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := serve(env, r)

			require.Equal(t, tt.status, rec.Code)
			if tt.bareString {
				require.JSONEq(t, `"Unauthorized"`, rec.Body.String())
				return
			}
			require.NotEmpty(t, errorMessage(t, rec))
		})
	}
}

func TestAuthMiddlewareAcceptsSignupToken(t *testing.T) {
	env := newTestEnv(t, false)
	alice := env.signup(t, "alice")

	rec := env.doJSON(t, http.MethodPut, "/offer/update",
		marketsdk.UpdateOfferRequest{ID: env.store.NewID(), Color: "red"}, alice.Token)

	// Past authentication: the offer lookup answers.
	require.Equal(t, http.StatusNotFound, rec.Code)
}
