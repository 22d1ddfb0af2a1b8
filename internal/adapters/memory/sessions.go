package memory

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"hotel_voice/internal/adapters/observability"
)

// SessionStore is the process-local session store. It is bounded: the least
// recently used sessions are evicted once capacity is reached. Safe for
// concurrent use; the last writer wins.
type SessionStore struct {
	c *lru.Cache[string, int]
}

func New(capacity int) (*SessionStore, error) {
	if capacity <= 0 {
		capacity = 10000
	}
	c, err := lru.New[string, int](capacity)
	if err != nil {
		return nil, err
	}
	return &SessionStore{c: c}, nil
}

func (s *SessionStore) Ping(context.Context) error { return nil }

func (s *SessionStore) Get(_ context.Context, sessionID string) (int, bool, error) {
	idx, ok := s.c.Get(sessionID)
	if !ok {
		observability.ObserveSession("memory", "miss")
		return 0, false, nil
	}
	observability.ObserveSession("memory", "hit")
	return idx, true, nil
}

func (s *SessionStore) Set(_ context.Context, sessionID string, idx int) error {
	s.c.Add(sessionID, idx)
	observability.ObserveSession("memory", "set")
	return nil
}

func (s *SessionStore) Len() int { return s.c.Len() }
