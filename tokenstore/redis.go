package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tda-tools/tdactl/tda"
)

// DefaultRedisKey is the key the token is stored under when none is
// configured.
const DefaultRedisKey = "tdactl:access_token"

// RedisStore persists the token in Redis, which is handy when several
// hosts share one set of credentials.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store from a redis:// URL.
func NewRedisStore(url, key string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisStore{
		client: redis.NewClient(opt),
		key:    key,
	}, nil
}

// Load fetches the stored token. A missing key is reported as
// ErrNotFound.
func (s *RedisStore) Load(ctx context.Context) (*tda.AccessToken, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read token from redis: %w", err)
	}

	var token tda.AccessToken
	if err := json.Unmarshal([]byte(val), &token); err != nil {
		return nil, fmt.Errorf("failed to parse stored token: %w", err)
	}
	return &token, nil
}

// Save stores the token without a TTL; staleness is detected by the
// token's own expiry timestamp on load.
func (s *RedisStore) Save(ctx context.Context, token *tda.AccessToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := s.client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to write token to redis: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
