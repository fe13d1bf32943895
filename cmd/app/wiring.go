package main

import (
	"context"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/chime"
	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/database"
	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/models"
	"github.com/akyairhashvil/stoplicht/internal/report"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
	"github.com/akyairhashvil/stoplicht/internal/timer"
	"github.com/akyairhashvil/stoplicht/internal/util"
)

const journalBuffer = 64

// journal is the optional session log and the goroutine writing it.
type journal struct {
	db       *database.Database
	listener *database.Journal
	cancel   context.CancelFunc
	done     chan struct{}
}

// openJournal returns nil when the journal is disabled.
func openJournal(ctx context.Context, s config.Settings, log *logger.Logger) (*journal, error) {
	if !s.Journal.Enabled {
		return nil, nil
	}
	if log == nil {
		log = logger.Nop()
	}
	db, err := database.Open(ctx, s.Journal.Path)
	if err != nil {
		return nil, err
	}
	if n, err := db.CloseOpenSessions(ctx, time.Now()); err != nil {
		log.Warnw("journal_repair_failed", "err", err)
	} else if n > 0 {
		log.Infow("journal_repaired", "sessions", n)
	}

	runCtx, cancel := context.WithCancel(ctx)
	j := &journal{db: db, listener: database.NewJournal(db, log, journalBuffer), cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(j.done)
		_ = j.listener.Run(runCtx)
	}()
	return j, nil
}

// Listener is nil-safe so callers can pass it straight to timer.Listeners.
func (j *journal) Listener() timer.Listener {
	if j == nil {
		return nil
	}
	return j.listener
}

func (j *journal) sessionsForDay(ctx context.Context, day time.Time) []models.Session {
	if j == nil {
		return nil
	}
	sessions, err := j.db.SessionsForDay(ctx, day)
	if err != nil {
		return nil
	}
	return sessions
}

// Close flushes queued events and closes the database.
func (j *journal) Close() error {
	if j == nil {
		return nil
	}
	j.cancel()
	<-j.done
	return j.db.Close()
}

func newPlayer(s config.Settings) chime.Player {
	if !s.Chime.Enabled {
		return chime.Disabled{}
	}
	return chime.NewSpeakerPlayer()
}

func reportsDir(dir string) string {
	if dir != "" {
		return dir
	}
	return util.ReportsDir(config.AppName)
}

// exporter writes the task sheet into dir, with today's sessions if journalled.
func exporter(s config.Settings, j *journal, dir string) func(ctx context.Context, views []taskpanel.View) (string, error) {
	return func(ctx context.Context, views []taskpanel.View) (string, error) {
		now := time.Now()
		return report.WriteFile(ctx, dir, report.Input{
			Date:     now,
			Tasks:    views,
			AssetDir: s.Assets.Dir,
			Sessions: j.sessionsForDay(ctx, now),
		})
	}
}
