// Package clock provides the tick sources that drive the countdown.
package clock

import "time"

// Handle identifies one scheduled callback. The zero Handle is never issued.
type Handle uint64

// NoHandle is the zero value; cancelling it is a no-op.
const NoHandle Handle = 0

// Clock schedules repeating ticks and one-shot callbacks.
//
// Cancel must be safe on stale, cancelled or zero handles. Once Cancel
// returns, the callback of that handle is never invoked again.
type Clock interface {
	Every(period time.Duration, fn func()) Handle
	After(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
	Now() time.Time
}
