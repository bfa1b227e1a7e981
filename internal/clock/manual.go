package clock

import (
	"context"
	"sync"
	"time"
)

// Compile-time interface check.
var _ Clock = (*Manual)(nil)

// Manual is a deterministic clock. Time only moves when Advance is
// called, and callbacks run synchronously on the caller's goroutine.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	entries []*manualEntry
}

type manualEntry struct {
	ctx      context.Context
	interval time.Duration
	next     time.Duration
	fn       func(context.Context)
	stopped  bool
}

// NewManual creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every registers fn to run each time Advance crosses a multiple of
// interval from now.
func (m *Manual) Every(ctx context.Context, interval time.Duration, fn func(context.Context)) Stopper {
	if interval <= 0 {
		interval = time.Nanosecond
	}

	m.mu.Lock()
	e := &manualEntry{ctx: ctx, interval: interval, next: m.now + interval, fn: fn}
	m.entries = append(m.entries, e)
	m.mu.Unlock()

	return StopFunc(func() {
		m.mu.Lock()
		e.stopped = true
		m.mu.Unlock()
	})
}

// Advance moves time forward by d, firing every due callback in time
// order. A callback that stops a schedule prevents its later firings
// within the same Advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		m.prune()
		e := m.earliest(target)
		if e == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = e.next
		e.next += e.interval
		ctx, fn := e.ctx, e.fn
		m.mu.Unlock()

		fn(ctx)
	}
}

// Pending returns the number of live schedules.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	return len(m.entries)
}

// prune drops stopped and cancelled entries. Must be called with m.mu held.
func (m *Manual) prune() {
	n := 0
	for _, e := range m.entries {
		if e.stopped || e.ctx.Err() != nil {
			continue
		}
		m.entries[n] = e
		n++
	}
	m.entries = m.entries[:n]
}

// earliest returns the entry due first at or before target, or nil.
// Must be called with m.mu held.
func (m *Manual) earliest(target time.Duration) *manualEntry {
	var best *manualEntry
	for _, e := range m.entries {
		if e.next > target {
			continue
		}
		if best == nil || e.next < best.next {
			best = e
		}
	}
	return best
}
