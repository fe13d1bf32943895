// Package metrics counts countdown activity. Components take a Recorder
// and default to NoopRecorder; the board swaps in PrometheusRecorder.
package metrics

import "github.com/akyairhashvil/stoplicht/internal/models"

// Recorder defines the timer observability hooks. Implementations must be
// safe for concurrent use.
type Recorder interface {
	IncStart(minutes int)
	IncOutcome(outcome models.SessionOutcome)
	IncRejected()
	IncChimeFailure()
	SetRemaining(seconds int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncStart(int)                     {}
func (NoopRecorder) IncOutcome(models.SessionOutcome) {}
func (NoopRecorder) IncRejected()                     {}
func (NoopRecorder) IncChimeFailure()                 {}
func (NoopRecorder) SetRemaining(int)                 {}

// Listener feeds timer events into a Recorder.
type Listener struct {
	Recorder Recorder
}

func (l Listener) OnTimerEvent(ev models.TimerEvent) {
	r := l.Recorder
	if r == nil {
		return
	}
	switch ev.Kind {
	case models.EventStarted:
		r.IncStart(ev.RequestedMinutes)
		r.SetRemaining(ev.State.RemainingSeconds)
	case models.EventTick:
		r.SetRemaining(ev.State.RemainingSeconds)
	case models.EventStopped:
		r.IncOutcome(models.OutcomeStopped)
		r.SetRemaining(0)
	case models.EventFinished:
		r.IncOutcome(models.OutcomeFinished)
		r.SetRemaining(0)
	case models.EventRejected:
		r.IncRejected()
	case models.EventChimeFailed:
		r.IncChimeFailure()
	}
}
