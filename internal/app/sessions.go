package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_voice/internal/domain"
)

// SessionMode is decided once, when the tracker is built.
type SessionMode int

const (
	Connected SessionMode = iota
	LocalFallback
)

func (m SessionMode) String() string {
	if m == Connected {
		return "connected"
	}
	return "local_fallback"
}

// SessionTracker remembers the last chunk index served per session. It is a
// best-effort cache: store errors are logged and never fail a request.
type SessionTracker struct {
	store domain.SessionStore
	mode  SessionMode
}

// NewSessionTracker pings remote once within probeTimeout. If remote is nil
// or the ping fails, local serves for the rest of the process lifetime.
func NewSessionTracker(ctx context.Context, remote, local domain.SessionStore, probeTimeout time.Duration) *SessionTracker {
	if remote == nil {
		log.Warn().Msg("no remote session store configured, using in-memory store")
		return &SessionTracker{store: local, mode: LocalFallback}
	}
	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := remote.Ping(pctx); err != nil {
		log.Warn().Err(err).Msg("session store unreachable, using in-memory store")
		return &SessionTracker{store: local, mode: LocalFallback}
	}
	log.Info().Msg("session store connected")
	return &SessionTracker{store: remote, mode: Connected}
}

func (t *SessionTracker) Mode() SessionMode { return t.mode }

func (t *SessionTracker) Save(ctx context.Context, sessionID string, idx int) {
	if err := t.store.Set(ctx, sessionID, idx); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Str("mode", t.mode.String()).Msg("session save failed")
	}
}

// Get returns the stored chunk index, or 0 if unseen or unreadable.
func (t *SessionTracker) Get(ctx context.Context, sessionID string) int {
	idx, ok, err := t.store.Get(ctx, sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Str("mode", t.mode.String()).Msg("session read failed")
		return 0
	}
	if !ok {
		return 0
	}
	return idx
}
