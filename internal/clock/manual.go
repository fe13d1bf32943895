package clock

import (
	"sync"
	"time"
)

// Manual is a virtual clock that only moves when Advance is called.
// Callbacks run on the goroutine calling Advance, in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	next   Handle
	seq    uint64
	timers map[Handle]*manualTimer
}

type manualTimer struct {
	due    time.Time
	period time.Duration
	seq    uint64
	fn     func()
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start, timers: make(map[Handle]*manualTimer)}
}

func (m *Manual) Every(period time.Duration, fn func()) Handle {
	return m.schedule(period, period, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) Handle {
	return m.schedule(delay, 0, fn)
}

func (m *Manual) schedule(delay, period time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.seq++
	m.timers[m.next] = &manualTimer{due: m.now.Add(delay), period: period, seq: m.seq, fn: fn}
	return m.next
}

func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	delete(m.timers, h)
	m.mu.Unlock()
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending reports how many callbacks are scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves the clock forward by d and returns the number of callbacks fired.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now.Add(d)
	fired := 0
	for {
		h, t := m.earliestLocked(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.period > 0 {
			m.seq++
			t.due = t.due.Add(t.period)
			t.seq = m.seq
		} else {
			delete(m.timers, h)
		}
		fn := t.fn
		m.mu.Unlock()
		fn()
		fired++
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
	return fired
}

func (m *Manual) earliestLocked(limit time.Time) (Handle, *manualTimer) {
	var (
		bestH Handle
		best  *manualTimer
	)
	for h, t := range m.timers {
		if t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			bestH, best = h, t
		}
	}
	return bestH, best
}
