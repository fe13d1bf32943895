package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/models"
)

const drainTimeout = 2 * time.Second

// Journal records timer events as sessions. OnTimerEvent never blocks:
// writes happen on the goroutine running Run, and events that do not fit
// the buffer are dropped and counted.
type Journal struct {
	repo    SessionRepository
	log     *logger.Logger
	events  chan models.TimerEvent
	dropped atomic.Int64

	current string
}

func NewJournal(repo SessionRepository, log *logger.Logger, buffer int) *Journal {
	if log == nil {
		log = logger.Nop()
	}
	if buffer < 1 {
		buffer = 1
	}
	return &Journal{repo: repo, log: log, events: make(chan models.TimerEvent, buffer)}
}

func (j *Journal) OnTimerEvent(ev models.TimerEvent) {
	switch ev.Kind {
	case models.EventStarted, models.EventStopped, models.EventFinished:
	default:
		return
	}
	select {
	case j.events <- ev:
	default:
		j.dropped.Add(1)
		j.log.Warnw("journal_event_dropped", "kind", string(ev.Kind))
	}
}

// Dropped reports how many events did not fit the buffer.
func (j *Journal) Dropped() int64 { return j.dropped.Load() }

// Run writes events until ctx is cancelled, then flushes what is queued.
func (j *Journal) Run(ctx context.Context) error {
	for {
		select {
		case ev := <-j.events:
			j.write(ctx, ev)
		case <-ctx.Done():
			j.drain()
			return nil
		}
	}
}

func (j *Journal) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case ev := <-j.events:
			j.write(ctx, ev)
		default:
			return
		}
	}
}

func (j *Journal) write(ctx context.Context, ev models.TimerEvent) {
	switch ev.Kind {
	case models.EventStarted:
		id, err := j.repo.StartSession(ctx, models.Session{
			RequestedMinutes: ev.RequestedMinutes,
			StartedAt:        ev.At,
			Outcome:          models.OutcomeRunning,
		})
		if err != nil {
			j.current = ""
			j.log.Warnw("journal_write_failed", "kind", string(ev.Kind), "err", err)
			return
		}
		j.current = id
	case models.EventStopped, models.EventFinished:
		if j.current == "" {
			return
		}
		outcome, remaining := models.OutcomeFinished, 0
		if ev.Kind == models.EventStopped {
			outcome, remaining = models.OutcomeStopped, ev.Abandoned
		}
		if err := j.repo.EndSession(ctx, j.current, outcome, ev.At, remaining); err != nil {
			j.log.Warnw("journal_write_failed", "kind", string(ev.Kind), "session", j.current, "err", err)
		}
		j.current = ""
	}
}
