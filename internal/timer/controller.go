// Package timer owns the countdown and keeps the traffic light, status
// text, buttons and hourglass in step with it.
package timer

import (
	"math"
	"strconv"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/clock"
	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/display"
	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/models"
)

// LongestMinutes is the largest countdown whose length still fits a
// time.Duration. It bounds the input even when no cap is configured.
const LongestMinutes = math.MaxInt64 / int64(time.Second) / 60

// Controller is the countdown state machine. It is not safe for concurrent
// use: every method and every clock callback must run on one goroutine
// (see Loop).
type Controller struct {
	clock   clock.Clock
	display display.Adapter
	log     *logger.Logger
	events  Listener
	onStart func()

	maxMinutes     int
	idleMessage    string
	workingMessage string
	invalidMessage string
	tickPeriod     time.Duration
	gracePeriod    time.Duration

	state     models.TimerState
	requested int
	tick      clock.Handle
	grace     clock.Handle
	// gen changes on every start so ticks of an older countdown are ignored.
	gen uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxMinutes caps the minutes input; 0 removes the cap.
func WithMaxMinutes(n int) Option {
	return func(c *Controller) { c.maxMinutes = n }
}

// WithMessages sets the idle and working status texts.
func WithMessages(idle, working string) Option {
	return func(c *Controller) {
		if idle != "" {
			c.idleMessage = idle
		}
		if working != "" {
			c.workingMessage = working
		}
	}
}

// WithInvalidMessage sets the alert text for rejected input.
func WithInvalidMessage(msg string) Option {
	return func(c *Controller) { c.invalidMessage = msg }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithListener(l Listener) Option {
	return func(c *Controller) { c.events = l }
}

// WithStartHook runs fn after a countdown starts, e.g. to bring the
// light into view.
func WithStartHook(fn func()) Option {
	return func(c *Controller) { c.onStart = fn }
}

func WithTickPeriod(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tickPeriod = d
		}
	}
}

func WithGracePeriod(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.gracePeriod = d
		}
	}
}

// New builds an idle controller. Call Init to paint the initial display.
func New(clk clock.Clock, adapter display.Adapter, opts ...Option) *Controller {
	c := &Controller{
		clock:          clk,
		display:        adapter,
		log:            logger.Nop(),
		maxMinutes:     config.DefaultMaxMinutes,
		idleMessage:    config.DefaultIdleMessage,
		workingMessage: config.DefaultWorkingMessage,
		invalidMessage: config.InvalidMinutesMessage,
		tickPeriod:     config.TickPeriod,
		gracePeriod:    config.GracePeriod,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init shows the idle display: green light, idle text, start enabled.
func (c *Controller) Init() {
	c.showIdle()
}

func (c *Controller) State() models.TimerState {
	return c.state
}

// SetMessages replaces the status texts; they apply from the next transition.
func (c *Controller) SetMessages(idle, working string) {
	WithMessages(idle, working)(c)
}

// MaxMinutes reports the configured cap, 0 when unbounded.
func (c *Controller) MaxMinutes() int {
	return c.maxMinutes
}

// Start parses the minutes field and starts the countdown.
func (c *Controller) Start(input string) error {
	if c.state.Phase != models.PhaseIdle {
		return nil
	}
	minutes, ok := ParseMinutes(input)
	if !ok {
		// Not a number compares false against every bound; treat it as too small.
		return c.reject(input)
	}
	return c.start(input, minutes)
}

// StartMinutes starts the countdown with an already parsed value.
func (c *Controller) StartMinutes(minutes int) error {
	if c.state.Phase != models.PhaseIdle {
		return nil
	}
	return c.start(strconv.Itoa(minutes), minutes)
}

func (c *Controller) start(input string, minutes int) error {
	if minutes < config.MinMinutes || (c.maxMinutes > 0 && minutes > c.maxMinutes) || int64(minutes) > LongestMinutes {
		return c.reject(input)
	}

	c.clock.Cancel(c.grace)
	c.grace = clock.NoHandle

	total := minutes * 60
	c.requested = minutes
	c.state = models.TimerState{Phase: models.PhaseRunning, TotalSeconds: total, RemainingSeconds: total}

	c.display.SetButtonsEnabled(false, true)
	c.display.SetLight(models.LightRed)
	c.display.SetStatusText(c.workingMessage)
	c.display.StartHourglass(time.Duration(total) * time.Second)

	c.gen++
	gen := c.gen
	c.tick = c.clock.Every(c.tickPeriod, func() { c.onTick(gen) })

	if c.onStart != nil {
		c.onStart()
	}
	c.log.Infow("timer_started", "minutes", minutes, "total_seconds", total)
	c.emit(models.EventStarted, nil)
	return nil
}

func (c *Controller) reject(input string) error {
	err := &InvalidInputError{Input: input, Min: config.MinMinutes, Max: c.maxMinutes, Message: c.invalidMessage}
	c.log.Infow("timer_start_rejected", "input", input, "max_minutes", c.maxMinutes)
	c.emit(models.EventRejected, err)
	return err
}

// Stop abandons a running countdown. It does nothing unless running.
func (c *Controller) Stop() {
	if c.state.Phase != models.PhaseRunning {
		return
	}
	c.cancelTick()
	remaining := c.state.RemainingSeconds
	c.state = models.TimerState{Phase: models.PhaseIdle, TotalSeconds: c.state.TotalSeconds}

	c.showIdle()
	c.log.Infow("timer_stopped", "remaining_seconds", remaining)
	c.publish(models.EventStopped, nil, remaining)
}

func (c *Controller) cancelTick() {
	c.clock.Cancel(c.tick)
	c.tick = clock.NoHandle
}

func (c *Controller) onTick(gen uint64) {
	if gen != c.gen || c.state.Phase != models.PhaseRunning {
		return
	}
	c.state.RemainingSeconds--
	if c.state.RemainingSeconds <= 0 {
		c.state.RemainingSeconds = 0
		c.finish()
		return
	}
	c.emit(models.EventTick, nil)
}

func (c *Controller) finish() {
	c.cancelTick()
	c.state = models.TimerState{Phase: models.PhaseFinishing, TotalSeconds: c.state.TotalSeconds}

	c.display.SetButtonsEnabled(true, false)
	c.display.SetLight(models.LightGreen)
	c.display.SetStatusText(c.idleMessage)
	c.display.ResetHourglass()
	if err := c.display.PlayChime(); err != nil {
		c.log.Debugw("chime_failed", "err", err)
		c.emit(models.EventChimeFailed, err)
	}

	c.state.Phase = models.PhaseIdle
	c.grace = c.clock.After(c.gracePeriod, c.reassert)
	c.log.Infow("timer_finished", "total_seconds", c.state.TotalSeconds)
	c.emit(models.EventFinished, nil)
}

// reassert repaints the idle light once the grace period is over.
func (c *Controller) reassert() {
	c.grace = clock.NoHandle
	if c.state.Phase != models.PhaseIdle {
		return
	}
	c.display.SetLight(models.LightGreen)
	c.display.SetStatusText(c.idleMessage)
	c.display.ResetHourglass()
}

func (c *Controller) showIdle() {
	c.display.SetButtonsEnabled(true, false)
	c.display.SetLight(models.LightGreen)
	c.display.SetStatusText(c.idleMessage)
	c.display.ResetHourglass()
}

func (c *Controller) emit(kind models.EventKind, err error) {
	c.publish(kind, err, 0)
}

func (c *Controller) publish(kind models.EventKind, err error, abandoned int) {
	if c.events == nil {
		return
	}
	c.events.OnTimerEvent(models.TimerEvent{
		Kind:             kind,
		State:            c.state,
		RequestedMinutes: c.requested,
		Abandoned:        abandoned,
		At:               c.clock.Now(),
		Err:              err,
	})
}
