package credstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore backs the credential keys with Redis; used by headless
// deployments (e.g. a bot embedding this SDK on a server) where a local
// credentials file does not fit.
type RedisStore struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "eleve"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, timeout: 5 * time.Second}
}

func (s *RedisStore) tokenKey() string { return s.prefix + ":token" }
func (s *RedisStore) userKey() string  { return s.prefix + ":user" }

func (s *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *RedisStore) Token() (string, bool) {
	ctx, cancel := s.ctx()
	defer cancel()
	token, err := s.rdb.Get(ctx, s.tokenKey()).Result()
	if err != nil || token == "" {
		// storage unavailable reads degrade to "no token"
		return "", false
	}
	return token, true
}

func (s *RedisStore) SetToken(token string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	return errors.Wrap(s.rdb.Set(ctx, s.tokenKey(), token, 0).Err(), "credstore: storing token")
}

func (s *RedisStore) User() (json.RawMessage, bool) {
	ctx, cancel := s.ctx()
	defer cancel()
	data, err := s.rdb.Get(ctx, s.userKey()).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *RedisStore) SetUser(user json.RawMessage) error {
	ctx, cancel := s.ctx()
	defer cancel()
	return errors.Wrap(s.rdb.Set(ctx, s.userKey(), []byte(user), 0).Err(), "credstore: storing user")
}

func (s *RedisStore) Clear() error {
	ctx, cancel := s.ctx()
	defer cancel()
	return errors.Wrap(s.rdb.Del(ctx, s.tokenKey(), s.userKey()).Err(), "credstore: clearing credentials")
}

func (s *RedisStore) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
