package clock

import "sync"

// Manual is a Clock for tests. Ticks are delivered synchronously by Advance.
type Manual struct {
	mu        sync.Mutex
	subs      map[int]func()
	nextID    int
	subscribe int
	cancels   int
}

// NewManual returns an idle Manual clock.
func NewManual() *Manual {
	return &Manual{subs: make(map[int]func())}
}

func (m *Manual) OnTick(cb func()) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = cb
	m.subscribe++
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.cancels++
			m.mu.Unlock()
		})
	}
}

// Advance delivers n ticks to every active subscriber. Subscribers that
// cancel during a tick receive no further ticks.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		ids := make([]int, 0, len(m.subs))
		for id := range m.subs {
			ids = append(ids, id)
		}
		m.mu.Unlock()

		for _, id := range ids {
			m.mu.Lock()
			cb, ok := m.subs[id]
			m.mu.Unlock()
			if ok {
				cb()
			}
		}
	}
}

// Active returns the number of live subscriptions.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Subscriptions returns how many times OnTick was called.
func (m *Manual) Subscriptions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribe
}

// Cancels returns how many subscriptions were cancelled.
func (m *Manual) Cancels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancels
}
