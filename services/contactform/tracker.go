package contactform

import (
	"sync"
	"time"
)

// DefaultTrackerTTL is how long a submission stays pollable
const DefaultTrackerTTL = 30 * time.Minute

// Tracker keeps in-flight and settled controllers reachable by submission ID
// so the acknowledgement can be fetched after the request that started it.
type Tracker struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]trackedForm
}

type trackedForm struct {
	ctrl      *Controller
	owner     string
	expiresAt time.Time
}

// NewTracker creates a tracker whose entries expire after ttl
func NewTracker(ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTrackerTTL
	}
	return &Tracker{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]trackedForm),
	}
}

// Put registers a controller under id. owner names the page that mounted
// the form and is returned by Lookup.
func (t *Tracker) Put(id, owner string, ctrl *Controller) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = trackedForm{ctrl: ctrl, owner: owner, expiresAt: t.now().Add(t.ttl)}
}

// Get returns the controller for id if it has not expired
func (t *Tracker) Get(id string) (*Controller, bool) {
	ctrl, _, ok := t.Lookup(id)
	return ctrl, ok
}

// Lookup is Get that also returns the owner
func (t *Tracker) Lookup(id string) (*Controller, string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[id]
	if !ok || t.now().After(entry.expiresAt) {
		return nil, "", false
	}
	return entry.ctrl, entry.owner, true
}

// Len returns the number of tracked submissions, expired ones included
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Sweep removes expired entries and returns how many were dropped
func (t *Tracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	removed := 0
	for id, entry := range t.entries {
		if now.After(entry.expiresAt) {
			delete(t.entries, id)
			removed++
		}
	}
	return removed
}
