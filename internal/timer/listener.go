package timer

import "github.com/akyairhashvil/stoplicht/internal/models"

// Listener observes controller transitions. Listeners run on the
// controller's goroutine and must not block.
type Listener interface {
	OnTimerEvent(ev models.TimerEvent)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev models.TimerEvent)

func (f ListenerFunc) OnTimerEvent(ev models.TimerEvent) { f(ev) }

// Listeners fans events out; nil entries are skipped.
type Listeners []Listener

func (ls Listeners) OnTimerEvent(ev models.TimerEvent) {
	for _, l := range ls {
		if l != nil {
			l.OnTimerEvent(ev)
		}
	}
}
