package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"hotel_voice/internal/app"
	"hotel_voice/internal/domain"
)

// ---- fakes ----

type fakeSessions struct {
	store   map[string]int
	pingErr error
	setErr  error
	sets    int
}

func (f *fakeSessions) Ping(context.Context) error { return f.pingErr }
func (f *fakeSessions) Get(_ context.Context, id string) (int, bool, error) {
	v, ok := f.store[id]
	return v, ok, nil
}
func (f *fakeSessions) Set(_ context.Context, id string, idx int) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	if f.store == nil {
		f.store = map[string]int{}
	}
	f.store[id] = idx
	return nil
}

func newQueryService(t *testing.T, maxTokens int) (*app.QueryService, *fakeSessions) {
	t.Helper()
	sess := &fakeSessions{}
	tracker := app.NewSessionTracker(context.Background(), sess, &fakeSessions{}, time.Second)
	r := app.NewRetriever(testDataset(), "Formi Resorts")
	return app.NewQueryService(r, tracker, wordCost{}, maxTokens), sess
}

// ---- tests ----

func TestClassifyQuery_GeneratesSessionID(t *testing.T) {
	q, _ := newQueryService(t, 800)

	out, err := q.ClassifyQuery("Book a room", "")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.Intent != domain.IntentBooking {
		t.Fatalf("intent %s", out.Intent)
	}
	if _, err := uuid.Parse(out.SessionID); err != nil {
		t.Fatalf("expected generated uuid, got %q", out.SessionID)
	}

	out, _ = q.ClassifyQuery("staff?", "caller-7")
	if out.SessionID != "caller-7" || out.Intent != domain.IntentStaff {
		t.Fatalf("unexpected: %+v", out)
	}
}

func TestClassifyQuery_BlankQuery(t *testing.T) {
	q, _ := newQueryService(t, 800)
	if _, err := q.ClassifyQuery("   ", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRetrieve_PaginatesToTheEnd(t *testing.T) {
	// four words per chunk over the policy text
	q, sess := newQueryService(t, 4)
	ctx := context.Background()
	full, _ := app.NewRetriever(testDataset(), "x").Retrieve(domain.RetrieveQuery{Intent: domain.IntentPolicy})

	var (
		seen []string
		next *int
	)
	for i := 0; i < 100; i++ {
		page, err := q.Retrieve(ctx, domain.RetrieveQuery{SessionID: "s1", Intent: domain.IntentPolicy, ChunkID: next})
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		seen = append(seen, page.Data)
		if !page.HasMore {
			if page.NextChunkID != nil {
				t.Fatalf("last page must not carry next_chunk_id")
			}
			break
		}
		if page.NextChunkID == nil || *page.NextChunkID != len(seen) {
			t.Fatalf("next_chunk_id should be %d, got %v", len(seen), page.NextChunkID)
		}
		next = page.NextChunkID
	}
	if len(seen) < 2 {
		t.Fatalf("expected several pages, got %d", len(seen))
	}
	if strings.Join(seen, " ") != strings.Join(strings.Fields(full), " ") {
		t.Fatalf("pages do not cover the text exactly once: %q", seen)
	}
	if sess.store["s1"] != len(seen)-1 {
		t.Fatalf("session should hold last chunk %d, got %d", len(seen)-1, sess.store["s1"])
	}
}

func TestRetrieve_OutOfRangeIsNotAnError(t *testing.T) {
	q, sess := newQueryService(t, 800)
	page, err := q.Retrieve(context.Background(), domain.RetrieveQuery{
		SessionID: "s2", Intent: domain.IntentDiscount, ChunkID: ptr(99),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if page.Data != "" || page.HasMore || page.NextChunkID != nil {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if sess.store["s2"] != 99 {
		t.Fatalf("requested index should still be saved, got %d", sess.store["s2"])
	}
}

func TestRetrieve_NoMatchingRooms(t *testing.T) {
	q, _ := newQueryService(t, 800)
	page, err := q.Retrieve(context.Background(), domain.RetrieveQuery{
		SessionID: "s3", Intent: domain.IntentBooking, GuestCount: ptr(12),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.HasPrefix(page.Data, "I'm sorry, I do not have information") || page.HasMore {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestRetrieve_MissingGuestCount(t *testing.T) {
	q, sess := newQueryService(t, 800)
	_, err := q.Retrieve(context.Background(), domain.RetrieveQuery{SessionID: "s4", Intent: domain.IntentBooking})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if sess.sets != 0 {
		t.Fatalf("failed requests must not touch the session")
	}
}

func TestRetrieve_SessionWriteFailureIsSwallowed(t *testing.T) {
	q, sess := newQueryService(t, 800)
	sess.setErr = errors.New("connection reset")
	page, err := q.Retrieve(context.Background(), domain.RetrieveQuery{SessionID: "s5", Intent: domain.IntentDiscount})
	if err != nil {
		t.Fatalf("session errors must not fail the request: %v", err)
	}
	if page.Data == "" {
		t.Fatalf("expected data")
	}
}

func TestSession_View(t *testing.T) {
	q, _ := newQueryService(t, 800)
	ctx := context.Background()
	if v := q.Session(ctx, "new"); v.ChunkID != 0 || v.Mode != "connected" {
		t.Fatalf("unexpected view %+v", v)
	}
	_, _ = q.Retrieve(ctx, domain.RetrieveQuery{SessionID: "known", Intent: domain.IntentPolicy, ChunkID: ptr(1)})
	if v := q.Session(ctx, "known"); v.ChunkID != 1 {
		t.Fatalf("unexpected view %+v", v)
	}
}
