package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/akyairhashvil/stoplicht/internal/models"
)

// StartSession inserts a running session and returns its id. An empty ID
// gets a fresh uuid.
func (d *Database) StartSession(ctx context.Context, s models.Session) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := d.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, day, requested_minutes, started_at, outcome, remaining_seconds)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, dayKey(s.StartedAt), s.RequestedMinutes, s.StartedAt, models.OutcomeRunning, s.RequestedMinutes*60)
	if err != nil {
		return "", wrapSessionErr("start", s.ID, err)
	}
	return s.ID, nil
}

// EndSession closes a running session.
func (d *Database) EndSession(ctx context.Context, id string, outcome models.SessionOutcome, endedAt time.Time, remaining int) error {
	res, err := d.DB.ExecContext(ctx,
		"UPDATE sessions SET ended_at = ?, outcome = ?, remaining_seconds = ? WHERE id = ? AND ended_at IS NULL",
		endedAt, outcome, remaining, id)
	if err != nil {
		return wrapSessionErr("end", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapSessionErr("end", id, err)
	}
	if n == 0 {
		return wrapSessionErr("end", id, ErrSessionNotFound)
	}
	return nil
}

// CloseOpenSessions marks sessions left running by a crash as stopped.
func (d *Database) CloseOpenSessions(ctx context.Context, at time.Time) (int64, error) {
	res, err := d.DB.ExecContext(ctx,
		"UPDATE sessions SET ended_at = ?, outcome = ? WHERE ended_at IS NULL", at, models.OutcomeStopped)
	if err != nil {
		return 0, wrapSessionErr("close open", "", err)
	}
	return res.RowsAffected()
}

// SessionsForDay lists the sessions started on day's calendar date, oldest first.
func (d *Database) SessionsForDay(ctx context.Context, day time.Time) ([]models.Session, error) {
	query, args := NewSessionQuery().WhereDay(dayKey(day)).OrderBy("started_at ASC").Build()
	sessions, err := d.querySessions(ctx, query, args...)
	if err != nil {
		return nil, wrapSessionErr("list day", "", err)
	}
	return sessions, nil
}

// RecentSessions lists up to limit sessions, newest first.
func (d *Database) RecentSessions(ctx context.Context, limit int) ([]models.Session, error) {
	query, args := NewSessionQuery().OrderBy("started_at DESC").Limit(limit).Build()
	sessions, err := d.querySessions(ctx, query, args...)
	if err != nil {
		return nil, wrapSessionErr("list recent", "", err)
	}
	return sessions, nil
}

func (d *Database) querySessions(ctx context.Context, query string, args ...interface{}) ([]models.Session, error) {
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var (
			s     models.Session
			ended sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.RequestedMinutes, &s.StartedAt, &ended, &s.Outcome, &s.RemainingSeconds); err != nil {
			return nil, err
		}
		s.EndedAt = timePtr(ended)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
