package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/service"
	"github.com/aussiebroadwan/market/internal/market/tokencache"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	entries map[string]domain.User
	gets    int
	failGet bool
}

func (c *mapCache) Get(_ context.Context, token string) (domain.User, error) {
	c.gets++
	if c.failGet {
		return domain.User{}, errors.New("redis down")
	}
	u, ok := c.entries[token]
	if !ok {
		return domain.User{}, tokencache.ErrMiss
	}
	return u, nil
}

func (c *mapCache) Set(_ context.Context, token string, u domain.User) error {
	c.entries[token] = u
	return nil
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st, Images: newFakeHost()}

	alice, err := users.Signup(ctx, service.SignupInput{Email: "alice@example.com", Username: "alice", Password: "pw"})
	require.NoError(t, err)

	t.Run("store only", func(t *testing.T) {
		auth := &service.AuthService{Store: st}

		u, err := auth.Authenticate(ctx, alice.Token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, u.ID)
		require.Equal(t, "alice", u.Account.Username)
		require.Empty(t, u.Hash)

		_, err = auth.Authenticate(ctx, "unknown")
		require.ErrorIs(t, err, service.ErrUnauthorized)

		_, err = auth.Authenticate(ctx, "")
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("cache is filled then used", func(t *testing.T) {
		cache := &mapCache{entries: map[string]domain.User{}}
		auth := &service.AuthService{Store: st, Cache: cache}

		_, err := auth.Authenticate(ctx, alice.Token)
		require.NoError(t, err)
		require.Contains(t, cache.entries, alice.Token)

		cache.entries[alice.Token] = domain.User{ID: "from-cache"}
		u, err := auth.Authenticate(ctx, alice.Token)
		require.NoError(t, err)
		require.Equal(t, "from-cache", u.ID)
	})

	t.Run("cache failure falls through", func(t *testing.T) {
		cache := &mapCache{entries: map[string]domain.User{}, failGet: true}
		auth := &service.AuthService{Store: st, Cache: cache}

		u, err := auth.Authenticate(ctx, alice.Token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, u.ID)
		require.Equal(t, 1, cache.gets)
	})
}
