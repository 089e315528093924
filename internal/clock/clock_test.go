package clock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestManual_AdvanceDeliversTicks(t *testing.T) {
	m := NewManual()
	var n int
	cancel := m.OnTick(func() { n++ })

	m.Advance(3)
	if n != 3 {
		t.Errorf("ticks = %d, want 3", n)
	}

	cancel()
	cancel()
	m.Advance(2)
	if n != 3 {
		t.Errorf("ticks after cancel = %d, want 3", n)
	}
	if m.Cancels() != 1 {
		t.Errorf("Cancels = %d, want 1", m.Cancels())
	}
	if m.Active() != 0 {
		t.Errorf("Active = %d, want 0", m.Active())
	}
}

func TestManual_CancelInsideCallback(t *testing.T) {
	m := NewManual()
	var n int
	var cancel func()
	cancel = m.OnTick(func() {
		n++
		if n == 2 {
			cancel()
		}
	})

	m.Advance(5)
	if n != 2 {
		t.Errorf("ticks = %d, want 2", n)
	}
}

func TestTicker_StopsAfterCancel(t *testing.T) {
	tk := &Ticker{Interval: 5 * time.Millisecond}
	var n atomic.Int32
	fired := make(chan struct{}, 1)
	cancel := tk.OnTick(func() {
		n.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("ticker never fired")
	}
	cancel()
	cancel()

	after := n.Load()
	time.Sleep(30 * time.Millisecond)
	// At most one in-flight tick may land after cancel.
	if got := n.Load(); got > after+1 {
		t.Errorf("ticks after cancel = %d, want <= %d", got, after+1)
	}
}

func TestLocked_HoldsMutexDuringCallback(t *testing.T) {
	m := NewManual()
	var mu sync.Mutex
	c := Locked(m, &mu)

	var locked bool
	c.OnTick(func() {
		locked = !mu.TryLock()
	})
	m.Advance(1)
	if !locked {
		t.Error("callback should run with the mutex held")
	}
}
