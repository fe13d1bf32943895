package timer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("timer loop stopped")

// Loop serialises work onto one goroutine so a Controller can be driven
// from HTTP handlers, clock timers and websocket readers at once.
type Loop struct {
	work chan func()
	done chan struct{}
	once sync.Once
}

// NewLoop creates a loop with room for buffer queued jobs.
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{work: make(chan func(), buffer), done: make(chan struct{})}
}

// Run executes queued jobs until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.work:
			fn()
		}
	}
}

// Post queues fn. It reports false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case <-l.done:
		return false
	case l.work <- fn:
		return true
	}
}

// Dispatch matches the clock.NewReal dispatch signature.
func (l *Loop) Dispatch(fn func()) {
	l.Post(fn)
}

// Do runs fn on the loop and waits for it to return. When ctx ends before
// the job is picked up, fn never runs and ctx.Err() is returned; once fn
// has started, Do waits for it and reports success.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var claimed atomic.Bool
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		if claimed.CompareAndSwap(false, true) {
			fn()
		}
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		if claimed.CompareAndSwap(false, true) {
			return ctx.Err()
		}
		<-finished
		return nil
	}
}
