// Package engine implements the Pomodoro timer state machine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/tomato/internal/clock"
	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/logger"
	"github.com/hammamikhairi/tomato/internal/settings"
)

// Option configures the engine.
type Option func(*Engine)

// WithDurations sets the initial interval lengths in minutes. Values are
// clamped the same way ApplySettings clamps form input.
func WithDurations(workMinutes, breakMinutes int) Option {
	return func(e *Engine) {
		d := settings.FromMinutes(workMinutes, breakMinutes)
		e.state = domain.NewTimerState(d.WorkMinutes, d.BreakMinutes)
	}
}

// WithRenderer registers a renderer that receives a snapshot after every
// state change.
func WithRenderer(r domain.Renderer) Option {
	return func(e *Engine) {
		e.renderers = append(e.renderers, r)
	}
}

// WithTickInterval sets the wall time between ticks. One tick always
// counts down one second of interval time.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.tickInterval = d
	}
}

// Engine owns the timer state. All methods are safe for concurrent use:
// the clock delivers ticks on its own goroutine while the UI calls the
// rest.
type Engine struct {
	clock        clock.Clock
	notifier     domain.Notifier
	log          *logger.Logger
	renderers    []domain.Renderer
	tickInterval time.Duration

	mu    sync.Mutex
	state domain.TimerState
	// ticks is the installed schedule, nil while paused.
	ticks clock.Stopper
	// unwatch detaches the cancellation watch on the schedule's context.
	unwatch func() bool
	// gen identifies the current schedule. Ticks from older
	// generations are dropped.
	gen uint64
}

// New creates a timer engine in work mode, paused, with the default
// 25/5 split unless overridden by options.
func New(clk clock.Clock, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Engine {
	d := settings.Default()
	e := &Engine{
		clock:        clk,
		notifier:     notifier,
		log:          log,
		tickInterval: time.Second,
		state:        domain.NewTimerState(d.WorkMinutes, d.BreakMinutes),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Durations returns the configured interval lengths in minutes.
func (e *Engine) Durations() settings.Durations {
	e.mu.Lock()
	defer e.mu.Unlock()
	return settings.Durations{
		WorkMinutes:  e.state.WorkMinutes(),
		BreakMinutes: e.state.BreakMinutes(),
	}
}

// Start begins counting down. No-op if already running, so there is
// never more than one schedule installed.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.state.Running {
		e.mu.Unlock()
		e.log.Debug("start: already running")
		return
	}
	e.startLocked(ctx)
	snap := e.touchLocked()
	e.mu.Unlock()

	e.log.Info("started %s interval (%ds left)", snap.Mode, snap.Remaining)
	e.render(snap)
}

// Pause stops the countdown. Idempotent.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.state.Running {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	snap := e.touchLocked()
	e.mu.Unlock()

	e.log.Info("paused %s interval (%ds left)", snap.Mode, snap.Remaining)
	e.render(snap)
}

// Toggle pauses a running timer or starts a paused one.
func (e *Engine) Toggle(ctx context.Context) {
	e.mu.Lock()
	running := e.state.Running
	e.mu.Unlock()

	if running {
		e.Pause()
		return
	}
	e.Start(ctx)
}

// Tick advances the countdown by one second. When nothing is left the
// interval completes instead. Ticks while paused are ignored.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	if !e.state.Running {
		e.mu.Unlock()
		e.log.Debug("tick while paused, ignored")
		return
	}
	e.tickLocked(ctx)
}

// tickGen is the clock callback for schedule gen.
func (e *Engine) tickGen(ctx context.Context, gen uint64) {
	e.mu.Lock()
	if !e.state.Running || gen != e.gen {
		e.mu.Unlock()
		e.log.Debug("stale tick from schedule %d dropped", gen)
		return
	}
	e.tickLocked(ctx)
}

// tickLocked runs one tick. Must be called with e.mu held; releases it.
func (e *Engine) tickLocked(ctx context.Context) {
	if e.state.Remaining <= 0 {
		e.completeLocked(ctx)
		return
	}
	e.state.Remaining--
	snap := e.touchLocked()
	e.mu.Unlock()

	e.render(snap)
}

// CompleteInterval ends the current interval: ticking stops, the
// notification fires, and the opposite mode is loaded paused with its
// full duration. Completing a work interval bumps the counter.
func (e *Engine) CompleteInterval(ctx context.Context) {
	e.mu.Lock()
	e.completeLocked(ctx)
}

// completeLocked must be called with e.mu held; releases it.
func (e *Engine) completeLocked(ctx context.Context) {
	e.stopLocked()

	finished := e.state.Mode
	if finished == domain.ModeWork {
		e.state.CompletedWork++
	}
	e.state.Mode = finished.Next()
	e.state.Remaining = e.state.ActiveDuration()
	snap := e.touchLocked()
	e.mu.Unlock()

	e.log.Info("%s interval complete (completed work intervals=%d)", finished, snap.CompletedWork)
	e.notify(ctx, completionMessage(finished, snap))
	e.render(snap)
}

// Reset stops the countdown and refills the current mode's duration.
// Mode and the completed counter are kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.stopLocked()
	e.state.Remaining = e.state.ActiveDuration()
	snap := e.touchLocked()
	e.mu.Unlock()

	e.log.Info("reset %s interval to %ds", snap.Mode, snap.Remaining)
	e.render(snap)
}

// ApplySettings sanitizes the two duration fields and hard-resets the
// session to a paused work interval. Unparseable fields become one
// minute before clamping; only the completed counter survives.
func (e *Engine) ApplySettings(workInput, breakInput string) settings.Durations {
	d, errs := settings.Parse(workInput, breakInput)
	for _, err := range errs {
		e.log.Debug("settings: %v, using minimum", err)
	}

	e.mu.Lock()
	e.stopLocked()
	e.state.WorkDuration = d.WorkSeconds()
	e.state.BreakDuration = d.BreakSeconds()
	e.state.Mode = domain.ModeWork
	e.state.Remaining = e.state.WorkDuration
	snap := e.touchLocked()
	e.mu.Unlock()

	e.log.Info("settings applied: work=%dm break=%dm", d.WorkMinutes, d.BreakMinutes)
	e.render(snap)
	return d
}

// startLocked installs the tick schedule. Must be called with e.mu held.
func (e *Engine) startLocked(ctx context.Context) {
	e.gen++
	gen := e.gen
	e.state.Running = true
	e.ticks = e.clock.Every(ctx, e.tickInterval, func(ctx context.Context) {
		e.tickGen(ctx, gen)
	})
	// The clock drops the schedule with ctx; pause so Running follows.
	e.unwatch = context.AfterFunc(ctx, func() {
		e.scheduleCancelled(gen)
	})
}

// scheduleCancelled pauses the engine when the context schedule gen was
// started with is done.
func (e *Engine) scheduleCancelled(gen uint64) {
	e.mu.Lock()
	if !e.state.Running || gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	snap := e.touchLocked()
	e.mu.Unlock()

	e.log.Info("context done, paused %s interval (%ds left)", snap.Mode, snap.Remaining)
	e.render(snap)
}

// stopLocked cancels the tick schedule, if any. Must be called with
// e.mu held. Bumping gen makes any tick already past the clock's
// select a no-op.
func (e *Engine) stopLocked() {
	e.gen++
	e.state.Running = false
	if e.ticks != nil {
		e.ticks.Stop()
		e.ticks = nil
	}
	if e.unwatch != nil {
		e.unwatch()
		e.unwatch = nil
	}
}

// touchLocked bumps the version and returns a snapshot. Must be called
// with e.mu held.
func (e *Engine) touchLocked() domain.TimerState {
	e.state.Version++
	return e.state
}

func (e *Engine) render(snap domain.TimerState) {
	for _, r := range e.renderers {
		r.Render(snap)
	}
}

// notify fires the completion notification. Failures are logged only.
func (e *Engine) notify(ctx context.Context, msg string) {
	if e.notifier == nil {
		return
	}
	err := e.notifier.NotifyUrgent(ctx, msg)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotificationUnavailable):
		e.log.Debug("notify: %v", err)
	default:
		e.log.Warn("notify: %v", err)
	}
}

func completionMessage(finished domain.Mode, next domain.TimerState) string {
	if finished == domain.ModeWork {
		return fmt.Sprintf("[Pomodoro] Work interval #%d done. Take a %d minute break.",
			next.CompletedWork, next.BreakMinutes())
	}
	return fmt.Sprintf("[Pomodoro] Break over. Ready for %d minutes of focus.", next.WorkMinutes())
}
