// Package progress derives display values from the timer state.
package progress

import (
	"fmt"

	"github.com/hammamikhairi/tomato/internal/domain"
)

// Fraction returns how much of the current interval has elapsed, from 0
// (just started) to 1 (finished). Durations are always at least one
// minute, so there is no division by zero.
func Fraction(s domain.TimerState) float64 {
	active := s.ActiveDuration()
	return float64(active-s.Remaining) / float64(active)
}

// Percent is Fraction as a whole percentage, rounded down.
func Percent(s domain.TimerState) int {
	active := s.ActiveDuration()
	return (active - s.Remaining) * 100 / active
}

// Clock formats seconds as MM:SS. Minutes are not capped at 99 but never
// exceed 60 in practice.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
