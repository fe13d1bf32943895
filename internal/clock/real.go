package clock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// minDelay keeps a late periodic tick from being rescheduled with a zero delay.
const minDelay = time.Millisecond

// Real schedules callbacks on a clockwork clock. Every expiry is handed to
// dispatch, which should run it on the owner's goroutine; the handle is
// checked again there, so an expiry queued before Cancel is dropped.
type Real struct {
	clk      clockwork.Clock
	dispatch func(func())

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*realTimer
}

type realTimer struct {
	timer  clockwork.Timer
	period time.Duration
	due    time.Time
	fn     func()
}

// NewReal builds a clock. A nil clk uses wall time; a nil dispatch runs
// callbacks directly on the timer goroutine.
func NewReal(clk clockwork.Clock, dispatch func(func())) *Real {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Real{clk: clk, dispatch: dispatch, timers: make(map[Handle]*realTimer)}
}

func (r *Real) Every(period time.Duration, fn func()) Handle {
	return r.schedule(period, period, fn)
}

func (r *Real) After(delay time.Duration, fn func()) Handle {
	return r.schedule(delay, 0, fn)
}

func (r *Real) schedule(delay, period time.Duration, fn func()) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := r.next
	rt := &realTimer{period: period, due: r.clk.Now().Add(delay), fn: fn}
	rt.timer = r.clk.AfterFunc(delay, func() { r.expire(h) })
	r.timers[h] = rt
	return h
}

func (r *Real) expire(h Handle) {
	r.dispatch(func() { r.fire(h) })
}

func (r *Real) fire(h Handle) {
	r.mu.Lock()
	rt, ok := r.timers[h]
	if !ok {
		r.mu.Unlock()
		return
	}
	if rt.period > 0 {
		rt.due = rt.due.Add(rt.period)
		delay := rt.due.Sub(r.clk.Now())
		if delay < minDelay {
			delay = minDelay
		}
		rt.timer = r.clk.AfterFunc(delay, func() { r.expire(h) })
	} else {
		delete(r.timers, h)
	}
	fn := rt.fn
	r.mu.Unlock()
	fn()
}

func (r *Real) Cancel(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.timers[h]
	if !ok {
		return
	}
	rt.timer.Stop()
	delete(r.timers, h)
}

func (r *Real) Now() time.Time {
	return r.clk.Now()
}
