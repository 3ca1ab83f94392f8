// Package guard suppresses duplicate triggers of the same action within a
// short cooldown window.
package guard

import (
	"sync"
	"time"
)

const DefaultCooldown = 700 * time.Millisecond

// Guard tracks the start of the active window per action key.
type Guard struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]window
}

type window struct {
	start    time.Time
	cooldown time.Duration
}

func (w window) expired(now time.Time) bool {
	return now.Sub(w.start) >= w.cooldown
}

// Option configures a Guard.
type Option func(*Guard)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

func New(opts ...Option) *Guard {
	g := &Guard{now: time.Now, windows: map[string]window{}}
	for _, o := range opts {
		o(g)
	}
	return g
}

// ShouldProceed returns true if no window is open for key and opens one of
// the given cooldown. Rejected calls do not extend the window. A
// non-positive cooldown uses DefaultCooldown.
func (g *Guard) ShouldProceed(key string, cooldown time.Duration) bool {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.sweep(now)

	if _, open := g.windows[key]; open {
		return false
	}
	g.windows[key] = window{start: now, cooldown: cooldown}
	return true
}

// Len is the number of open windows.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sweep(g.now())
	return len(g.windows)
}

// Reset drops every window.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.windows)
}

func (g *Guard) sweep(now time.Time) {
	for k, w := range g.windows {
		if w.expired(now) {
			delete(g.windows, k)
		}
	}
}
