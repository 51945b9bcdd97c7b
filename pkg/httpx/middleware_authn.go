package httpx

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrMissingAuthorization   = errors.New("missing authorization header")
	ErrMalformedAuthorization = errors.New("malformed authorization header")
)

const bearerPrefix = "Bearer "

// BearerToken extracts the credential from "Authorization: Bearer <token>".
// The prefix is matched literally and the remainder is returned untrimmed,
// matching how tokens were issued.
func BearerToken(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", ErrMissingAuthorization
	}
	if !strings.HasPrefix(authz, bearerPrefix) {
		return "", ErrMalformedAuthorization
	}

	token := strings.TrimPrefix(authz, bearerPrefix)
	if token == "" {
		return "", ErrMalformedAuthorization
	}
	return token, nil
}

// WriteBearerChallenge sets an RFC 6750 WWW-Authenticate header. The body is
// left to the caller.
func WriteBearerChallenge(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
}
