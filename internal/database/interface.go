package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/models"
)

// SessionRepository defines the journal operations.
type SessionRepository interface {
	StartSession(ctx context.Context, s models.Session) (string, error)
	EndSession(ctx context.Context, id string, outcome models.SessionOutcome, endedAt time.Time, remaining int) error
	SessionsForDay(ctx context.Context, day time.Time) ([]models.Session, error)
	RecentSessions(ctx context.Context, limit int) ([]models.Session, error)
}

var _ SessionRepository = (*Database)(nil)
