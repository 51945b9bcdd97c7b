// Package tokencache keeps bearer token lookups out of the database. Tokens
// never rotate and users are never edited, so entries only expire by TTL.
package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "market:token:"

// ErrMiss is returned by Get when the token is not cached.
var ErrMiss = errors.New("tokencache: miss")

type Cache interface {
	Get(ctx context.Context, token string) (domain.User, error)
	Set(ctx context.Context, token string, u domain.User) error
}

type entry struct {
	ID       string        `json:"_id"`
	Username string        `json:"username"`
	Phone    string        `json:"phone,omitempty"`
	Avatar   *domain.Image `json:"avatar,omitempty"`
}

// RedisCache stores {id, account} as JSON under a prefixed key.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Dial connects and pings the server.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, token string) (domain.User, error) {
	raw, err := c.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, ErrMiss
	}
	if err != nil {
		return domain.User{}, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID: e.ID,
		Account: domain.Account{
			Username: e.Username,
			Phone:    e.Phone,
			Avatar:   e.Avatar,
		},
	}, nil
}

func (c *RedisCache) Set(ctx context.Context, token string, u domain.User) error {
	raw, err := json.Marshal(entry{
		ID:       u.ID,
		Username: u.Account.Username,
		Phone:    u.Account.Phone,
		Avatar:   u.Account.Avatar,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+token, raw, c.ttl).Err()
}

// Ping reports whether Redis is reachable; used by /readyz.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error { return c.client.Close() }
