package contactform

import (
	"sync"
	"time"
)

// Clock schedules the one-shot success callback
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

// RealClock uses time.AfterFunc
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ManualClock fires callbacks only when advanced. Used in tests and by
// callers that drive time themselves.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	pending []pendingCall
}

type pendingCall struct {
	at time.Duration
	f  func()
}

func (m *ManualClock) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, pendingCall{at: m.now + d, f: f})
}

// Advance moves the clock forward and runs every callback that became due
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []func()
	remaining := m.pending[:0]
	for _, p := range m.pending {
		if p.at <= m.now {
			due = append(due, p.f)
		} else {
			remaining = append(remaining, p)
		}
	}
	m.pending = remaining
	m.mu.Unlock()

	for _, f := range due {
		f()
	}
}

// Pending returns the number of callbacks not fired yet
func (m *ManualClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
