package redisad

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_voice/internal/adapters/observability"
)

const keyPrefix = "session:"

// SessionStore keeps chunk indexes as plain integers under session:<id>.
type SessionStore struct {
	c   *redis.Client
	ttl time.Duration
}

// New dials lazily; call Ping to find out whether the server is reachable.
// timeout bounds dial, read and write. ttl 0 means keys never expire.
func New(addr, pass string, db int, timeout, ttl time.Duration) *SessionStore {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pass,
		DB:           db,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   -1,
	}), ttl)
}

func NewWithClient(c *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{c: c, ttl: ttl}
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (int, bool, error) {
	v, err := s.c.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		observability.ObserveSession("redis", "miss")
		return 0, false, nil
	}
	if err != nil {
		observability.ObserveSession("redis", "error")
		return 0, false, err
	}
	idx, err := strconv.Atoi(v)
	if err != nil {
		observability.ObserveSession("redis", "error")
		return 0, false, err
	}
	observability.ObserveSession("redis", "hit")
	return idx, true, nil
}

func (s *SessionStore) Set(ctx context.Context, sessionID string, idx int) error {
	if err := s.c.Set(ctx, keyPrefix+sessionID, idx, s.ttl).Err(); err != nil {
		observability.ObserveSession("redis", "error")
		return err
	}
	observability.ObserveSession("redis", "set")
	return nil
}

func (s *SessionStore) Close() error { return s.c.Close() }
