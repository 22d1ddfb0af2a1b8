package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel_voice/internal/domain"
)

const callTimeLayout = "2006-01-02 15:04:05"

type CallLogService struct {
	sink domain.CallLogSink
	now  func() time.Time
}

func NewCallLogService(sink domain.CallLogSink) *CallLogService {
	return &CallLogService{sink: sink, now: time.Now}
}

// LogConversation normalizes rec and appends it to the sink once. There is
// no retry; a sink failure is returned to the caller.
func (s *CallLogService) LogConversation(ctx context.Context, rec domain.CallRecord) error {
	rec = s.normalize(rec)
	if err := s.sink.Append(ctx, rec); err != nil {
		return fmt.Errorf("append call log: %w", err)
	}
	return nil
}

func (s *CallLogService) normalize(rec domain.CallRecord) domain.CallRecord {
	if strings.TrimSpace(rec.CallTime) == "" {
		rec.CallTime = s.now().Format(callTimeLayout)
	}
	rec.CustomerName = domain.OrNA(rec.CustomerName)
	rec.RoomName = domain.OrNA(rec.RoomName)
	rec.CheckIn = domain.OrNA(rec.CheckIn)
	rec.CheckOut = domain.OrNA(rec.CheckOut)
	return rec
}
