package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/market/internal/market/service"
	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/aussiebroadwan/market/pkg/marketsdk"
	"github.com/aussiebroadwan/market/pkg/slogx"
)

// publishLimitsMessage is returned verbatim under "message" when an offer
// breaks the length or price limits. Existing clients match on it.
const publishLimitsMessage = "We can't proceed because your title or description may be too long (50 and 500 characters) or your price is too expensive (10000$ max)"

// unauthorizedBody is sent as a bare JSON string, not an envelope.
const unauthorizedBody = "Unauthorized"

// statusPolicy turns service errors into responses. The normalized mapping
// is the default; legacy mode keeps the codes older clients were built
// against (200 on some failures, 400 for everything unexpected).
type statusPolicy struct {
	legacy bool
}

type failure struct {
	status int
	body   any

	// internal marks failures whose cause is logged rather than returned.
	internal bool
}

func errorBody(msg string) marketsdk.ErrorResponse {
	return marketsdk.ErrorResponse{Error: msg}
}

// pick returns normalized, or legacy when the policy is in legacy mode.
func (p statusPolicy) pick(normalized, legacy int) int {
	if p.legacy {
		return legacy
	}
	return normalized
}

func (p statusPolicy) resolve(err error) failure {
	switch {
	// Users
	case errors.Is(err, service.ErrEmailTaken):
		return failure{status: http.StatusConflict, body: errorBody("Email already exists")}
	case errors.Is(err, service.ErrUsernameTaken):
		return failure{status: http.StatusConflict, body: errorBody("Username already exists")}
	case errors.Is(err, service.ErrInvalidUsername):
		return failure{status: p.pick(http.StatusBadRequest, http.StatusOK), body: errorBody("Please enter a valid username")}
	case errors.Is(err, service.ErrInvalidEmail):
		return failure{status: p.pick(http.StatusBadRequest, http.StatusOK), body: errorBody("Please enter a valid email")}
	case errors.Is(err, service.ErrPasswordRequired):
		return failure{status: http.StatusBadRequest, body: errorBody("Please enter a password")}
	case errors.Is(err, service.ErrUnknownUser):
		return failure{status: p.pick(http.StatusUnauthorized, http.StatusOK), body: errorBody("Incorrect username or email")}
	case errors.Is(err, service.ErrWrongPassword):
		return failure{status: http.StatusBadRequest, body: errorBody("Wrong password")}
	case errors.Is(err, service.ErrUnauthorized):
		return failure{status: http.StatusUnauthorized, body: unauthorizedBody}

	// Offers
	case errors.Is(err, service.ErrOfferInvalid):
		return failure{status: http.StatusBadRequest, body: marketsdk.MessageResponse{Message: publishLimitsMessage}}
	case errors.Is(err, service.ErrPictureRequired):
		return failure{status: http.StatusBadRequest, body: errorBody("picture is required")}
	case errors.Is(err, service.ErrInvalidOfferID):
		return failure{status: http.StatusBadRequest, body: errorBody("Invalid offer id")}
	case errors.Is(err, service.ErrOfferNotFound):
		return failure{status: p.pick(http.StatusNotFound, http.StatusBadRequest), body: errorBody("Offer not found")}
	case errors.Is(err, service.ErrNotOwner):
		return failure{status: http.StatusForbidden, body: errorBody("You are not the owner of this offer")}
	case errors.Is(err, service.ErrInvalidQuery), errors.Is(err, httpx.ErrInvalidBody):
		return failure{status: http.StatusBadRequest, body: errorBody(err.Error())}

	// Infrastructure
	case errors.Is(err, service.ErrImageHost):
		if p.legacy {
			return failure{status: http.StatusBadRequest, body: errorBody(err.Error()), internal: true}
		}
		return failure{status: http.StatusBadGateway, body: errorBody("image host request failed"), internal: true}
	default:
		if p.legacy {
			return failure{status: http.StatusBadRequest, body: errorBody(err.Error()), internal: true}
		}
		return failure{status: http.StatusInternalServerError, body: errorBody("internal server error"), internal: true}
	}
}

// writeError logs infrastructure failures and writes the mapped response.
func (p statusPolicy) writeError(w http.ResponseWriter, r *http.Request, err error) {
	f := p.resolve(err)
	if f.internal {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	}
	httpx.WriteJSON(w, f.status, f.body)
}

// writeAuthError answers a request whose Authorization header is missing or
// malformed.
func (p statusPolicy) writeAuthError(w http.ResponseWriter, err error) {
	httpx.WriteBearerChallenge(w, err.Error())
	httpx.WriteJSON(w, p.pick(http.StatusUnauthorized, http.StatusBadRequest), errorBody(err.Error()))
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrOfferNotFound)
}
