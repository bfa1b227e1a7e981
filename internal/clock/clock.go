// Package clock supplies the recurring one-second callback that drives
// the timer. Ticker uses wall-clock time; Manual is advanced by hand in
// tests so countdowns run without sleeping.
package clock

import (
	"context"
	"time"
)

// Clock schedules a callback every interval until the returned Stopper
// is stopped or ctx is cancelled.
type Clock interface {
	Every(ctx context.Context, interval time.Duration, fn func(context.Context)) Stopper
}

// Stopper cancels a schedule. Stop is idempotent.
type Stopper interface {
	Stop()
}

// StopFunc adapts a plain function to Stopper.
type StopFunc func()

// Stop calls f.
func (f StopFunc) Stop() { f() }
