package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/stoplicht/internal/clock"
)

// clockMsg is delivered when a scheduled callback is due.
type clockMsg struct {
	handle clock.Handle
}

type teaTimer struct {
	period time.Duration
	fn     func()
}

// teaClock implements clock.Clock on top of bubbletea's event loop: every
// schedule becomes a tea.Tick command and callbacks run inside Update, so
// the controller never sees another goroutine. Cancelled handles drop
// their messages.
type teaClock struct {
	now     func() time.Time
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	next    clock.Handle
	live    map[clock.Handle]*teaTimer
	pending []tea.Cmd
}

func newTeaClock(now func() time.Time) *teaClock {
	if now == nil {
		now = time.Now
	}
	return &teaClock{now: now, tick: tea.Tick, live: make(map[clock.Handle]*teaTimer)}
}

func (c *teaClock) Every(period time.Duration, fn func()) clock.Handle {
	return c.schedule(period, period, fn)
}

func (c *teaClock) After(delay time.Duration, fn func()) clock.Handle {
	return c.schedule(delay, 0, fn)
}

func (c *teaClock) schedule(delay, period time.Duration, fn func()) clock.Handle {
	c.next++
	h := c.next
	c.live[h] = &teaTimer{period: period, fn: fn}
	c.arm(h, delay)
	return h
}

func (c *teaClock) arm(h clock.Handle, d time.Duration) {
	c.pending = append(c.pending, c.tick(d, func(time.Time) tea.Msg { return clockMsg{handle: h} }))
}

func (c *teaClock) Cancel(h clock.Handle) {
	delete(c.live, h)
}

func (c *teaClock) Now() time.Time {
	return c.now()
}

// fire runs the callback of msg if its handle is still live.
func (c *teaClock) fire(msg clockMsg) {
	t, ok := c.live[msg.handle]
	if !ok {
		return
	}
	if t.period > 0 {
		c.arm(msg.handle, t.period)
	} else {
		delete(c.live, msg.handle)
	}
	t.fn()
}

// cmds hands over the ticks scheduled since the last call.
func (c *teaClock) cmds() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmd := tea.Batch(c.pending...)
	c.pending = nil
	return cmd
}
