package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hotel_voice/internal/domain"
)

type QueryService struct {
	retriever *Retriever
	sessions  *SessionTracker
	est       TokenCostEstimator
	maxTokens int
}

func NewQueryService(r *Retriever, s *SessionTracker, est TokenCostEstimator, maxTokens int) *QueryService {
	if maxTokens <= 0 {
		maxTokens = 800
	}
	return &QueryService{retriever: r, sessions: s, est: est, maxTokens: maxTokens}
}

type Classification struct {
	SessionID string        `json:"session_id"`
	Intent    domain.Intent `json:"intent"`
}

// ClassifyQuery labels the query and hands out a session id when the caller
// has none yet.
func (s *QueryService) ClassifyQuery(query, sessionID string) (Classification, error) {
	if strings.TrimSpace(query) == "" {
		return Classification{}, domain.Invalidf("query must not be empty")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return Classification{SessionID: sessionID, Intent: Classify(query)}, nil
}

// Retrieve renders the answer for q, chunks it and returns the requested
// page. The requested index is recorded for the session even when it is out
// of range.
func (s *QueryService) Retrieve(ctx context.Context, q domain.RetrieveQuery) (domain.Page, error) {
	text, err := s.retriever.Retrieve(q)
	if err != nil {
		return domain.Page{}, err
	}

	cid := 0
	if q.ChunkID != nil {
		cid = *q.ChunkID
	}
	s.sessions.Save(ctx, q.SessionID, cid)

	if strings.TrimSpace(text) == "" {
		return domain.Page{Data: noInfoText}, nil
	}

	chunks := Chunk(text, s.maxTokens, s.est)
	if cid < 0 || cid >= len(chunks) {
		return domain.Page{}, nil
	}
	page := domain.Page{Data: chunks[cid]}
	if cid < len(chunks)-1 {
		next := cid + 1
		page.HasMore = true
		page.NextChunkID = &next
	}
	return page, nil
}

func (s *QueryService) Session(ctx context.Context, sessionID string) domain.SessionView {
	return domain.SessionView{
		SessionID: sessionID,
		ChunkID:   s.sessions.Get(ctx, sessionID),
		Mode:      s.sessions.Mode().String(),
	}
}
