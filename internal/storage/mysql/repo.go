package mysql

import (
	"context"
	"database/sql"
	"time"

	"hotel_voice/internal/adapters/observability"
	"hotel_voice/internal/domain"
)

// Repo is the append-only call log kept in MySQL, an alternative to the
// spreadsheet sink. Rows are never read back by the service.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, rec domain.CallRecord) error {
	start := time.Now()
	_, err := r.db.ExecContext(ctx, insertCallLogSQL,
		rec.CallTime,
		rec.PhoneNumber,
		rec.CallOutcome,
		domain.OrNA(rec.CustomerName),
		domain.OrNA(rec.RoomName),
		domain.OrNA(rec.CheckIn),
		domain.OrNA(rec.CheckOut),
		rec.GuestsString(),
		rec.CallSummary,
	)
	status := 200
	if err != nil {
		status = 500
	}
	observability.ObserveExternal("mysql", "call_logs.insert", status, time.Since(start))
	return err
}
