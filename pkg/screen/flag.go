package screen

import (
	"time"

	"go.uber.org/atomic"
)

// Flag is the deferred-redraw signal shared across execution contexts.
// The receive and timer goroutines set it; the main-loop tick consumes
// it. Setting is idempotent and lossy-safe: N sets before one consume
// produce exactly one redraw, which is correct because Draw renders from
// current state rather than replaying events.
type Flag struct {
	v atomic.Bool
}

// Set marks a redraw as needed. Safe from any goroutine.
func (f *Flag) Set() {
	f.v.Store(true)
}

// Consume reports whether a redraw was requested and clears the flag in
// one step. Only the main-loop tick calls this.
func (f *Flag) Consume() bool {
	return f.v.Swap(false)
}

// IsSet reports the flag without clearing it
func (f *Flag) IsSet() bool {
	return f.v.Load()
}

// RedrawTicker periodically sets a flag so a screen repaints at a minimum
// cadence even when no line arrives, so elapsed-time displays keep moving.
// It is the timer-service context: it only ever sets the flag.
type RedrawTicker struct {
	stop chan struct{}
	done chan struct{}
}

// HeartbeatInterval is the default redraw heartbeat period
const HeartbeatInterval = 200 * time.Millisecond

// StartRedrawTicker starts a heartbeat setting flag every interval.
// Returns nil for a non-positive interval; a screen without a ticker
// still works, it just redraws on line arrival only.
func StartRedrawTicker(interval time.Duration, flag *Flag) *RedrawTicker {
	if interval <= 0 || flag == nil {
		return nil
	}

	rt := &RedrawTicker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(rt.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-rt.stop:
				return
			case <-ticker.C:
				flag.Set()
			}
		}
	}()

	return rt
}

// Stop halts the heartbeat and waits for it to finish, so the flag is
// never written after Stop returns. Must be called before the owning
// screen's state is released. Safe on a nil ticker.
func (rt *RedrawTicker) Stop() {
	if rt == nil {
		return
	}
	select {
	case <-rt.stop:
		// already stopped
	default:
		close(rt.stop)
	}
	<-rt.done
}
