package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/internal/market/tokencache"
	"github.com/aussiebroadwan/market/pkg/slogx"
)

type AuthService struct {
	Store store.Store

	// Cache is optional.
	Cache tokencache.Cache
}

// Authenticate resolves a bearer token to its user. Only ID and Account are
// populated. Cache errors are logged and fall through to the store.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrUnauthorized
	}
	log := slogx.FromContext(ctx)

	if s.Cache != nil {
		u, err := s.Cache.Get(ctx, token)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, tokencache.ErrMiss) {
			log.Warn("token cache read failed", slog.Any("error", err))
		}
	}

	u, err := s.Store.Users().GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, token, u); err != nil {
			log.Warn("token cache write failed", slog.Any("error", err))
		}
	}
	return u, nil
}
