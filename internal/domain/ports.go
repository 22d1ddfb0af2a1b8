package domain

import "context"

// DataSource loads the static hotel datasets.
type DataSource interface {
	Load(ctx context.Context) (*Dataset, error)
}

// SessionStore keeps the last served chunk index per session.
// Get reports found=false for unseen sessions.
type SessionStore interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, sessionID string) (idx int, found bool, err error)
	Set(ctx context.Context, sessionID string, idx int) error
}

// CallLogSink appends call records to an external, append-only log.
type CallLogSink interface {
	Append(ctx context.Context, rec CallRecord) error
}

// Read models & queries

type RetrieveQuery struct {
	SessionID  string
	Intent     Intent
	Topic      string
	ChunkID    *int
	GuestCount *int
	CheckIn    string
	CheckOut   string
	RoomName   string
}

type Page struct {
	Data        string `json:"data"`
	HasMore     bool   `json:"has_more"`
	NextChunkID *int   `json:"next_chunk_id"`
}

type SessionView struct {
	SessionID string `json:"session_id"`
	ChunkID   int    `json:"chunk_id"`
	Mode      string `json:"mode"`
}
