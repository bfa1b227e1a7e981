package clock

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/tomato/internal/logger"
)

// Compile-time interface check.
var _ Clock = (*Ticker)(nil)

// Option configures the ticker.
type Option func(*Ticker)

// WithMinInterval sets the smallest interval Every accepts. Shorter
// requests are raised to it.
func WithMinInterval(d time.Duration) Option {
	return func(t *Ticker) {
		t.minInterval = d
	}
}

// Ticker is the wall-clock implementation. Each schedule runs its own
// goroutine around a time.Ticker.
type Ticker struct {
	log         *logger.Logger
	minInterval time.Duration

	mu     sync.Mutex
	active int
}

// NewTicker creates a wall-clock scheduler.
func NewTicker(log *logger.Logger, opts ...Option) *Ticker {
	t := &Ticker{
		log:         log,
		minInterval: time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Every starts a background loop that calls fn once per interval.
// Non-blocking. Stop does not wait for an fn call already in progress,
// so fn may call Stop itself.
func (t *Ticker) Every(ctx context.Context, interval time.Duration, fn func(context.Context)) Stopper {
	if interval < t.minInterval {
		interval = t.minInterval
	}

	childCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.active++
	n := t.active
	t.mu.Unlock()

	go t.loop(childCtx, interval, fn)
	t.log.Debug("ticker: schedule started (interval=%s, active=%d)", interval, n)

	var once sync.Once
	return StopFunc(func() {
		once.Do(func() {
			cancel()
			t.mu.Lock()
			t.active--
			n := t.active
			t.mu.Unlock()
			t.log.Debug("ticker: schedule stopped (active=%d)", n)
		})
	})
}

// Active returns the number of schedules that have not been stopped.
func (t *Ticker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// loop is the tick loop for one schedule.
func (t *Ticker) loop(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick and a cancel can be ready together; cancel wins.
			if ctx.Err() != nil {
				return
			}
			fn(ctx)
		}
	}
}
