// Package clock provides the 1 Hz tick sources that drive timed exam
// sessions.
package clock

import (
	"sync"
	"time"
)

// Clock delivers periodic ticks to a subscriber until cancelled.
type Clock interface {
	// OnTick registers cb and returns a function that stops delivery.
	// The returned cancel is safe to call more than once.
	OnTick(cb func()) (cancel func())
}

// Ticker is a wall-clock Clock backed by time.Ticker.
type Ticker struct {
	Interval time.Duration
}

// NewTicker returns a Ticker firing once per second.
func NewTicker() *Ticker {
	return &Ticker{Interval: time.Second}
}

// OnTick starts a goroutine that calls cb on every tick. Cancel never
// blocks, so it may be called from inside cb.
func (t *Ticker) OnTick(cb func()) func() {
	interval := t.Interval
	if interval <= 0 {
		interval = time.Second
	}
	tk := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-tk.C:
				select {
				case <-done:
					return
				default:
				}
				cb()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			tk.Stop()
			close(done)
		})
	}
}

// Locked wraps c so every callback runs while holding mu.
func Locked(c Clock, mu sync.Locker) Clock {
	return lockedClock{inner: c, mu: mu}
}

type lockedClock struct {
	inner Clock
	mu    sync.Locker
}

func (l lockedClock) OnTick(cb func()) func() {
	return l.inner.OnTick(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		cb()
	})
}
