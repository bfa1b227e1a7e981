// Package settings turns raw duration input into clamped interval
// lengths and holds the candidate values while the settings form is open.
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/hammamikhairi/tomato/internal/domain"
)

// Durations is a validated pair of interval lengths in minutes.
type Durations struct {
	WorkMinutes  int
	BreakMinutes int
}

// WorkSeconds returns the work length in seconds.
func (d Durations) WorkSeconds() int { return d.WorkMinutes * 60 }

// BreakSeconds returns the break length in seconds.
func (d Durations) BreakSeconds() int { return d.BreakMinutes * 60 }

// Default returns the stock 25/5 split.
func Default() Durations {
	return Durations{WorkMinutes: domain.DefaultWorkMinutes, BreakMinutes: domain.DefaultBreakMinutes}
}

// ParseMinutes reads the leading integer of s, the way a lenient form
// field does: surrounding space is ignored and anything after the digits
// ("12min", "3.5") is dropped. Empty input, input without leading digits,
// and zero all yield ErrInvalidSettingsInput.
func ParseMinutes(s string) (int, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("%q: %w", s, domain.ErrInvalidSettingsInput)
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow gets here; saturate so the clamp still applies.
		if s[0] == '-' {
			return -1, nil
		}
		return int(^uint(0) >> 1), nil
	}
	if n == 0 {
		return 0, fmt.Errorf("zero minutes: %w", domain.ErrInvalidSettingsInput)
	}
	return n, nil
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}

// FromMinutes clamps already-numeric minutes. Zero counts as missing and
// becomes the minimum.
func FromMinutes(work, brk int) Durations {
	if work == 0 {
		work = domain.MinWorkMinutes
	}
	if brk == 0 {
		brk = domain.MinBreakMinutes
	}
	return Durations{
		WorkMinutes:  Clamp(work, domain.MinWorkMinutes, domain.MaxWorkMinutes),
		BreakMinutes: Clamp(brk, domain.MinBreakMinutes, domain.MaxBreakMinutes),
	}
}

// Parse sanitizes both form fields together. Each field that fails to
// parse falls back to 1 minute before clamping. The returned errors list
// which fields were replaced; they are informational only.
func Parse(workInput, breakInput string) (Durations, []error) {
	var errs []error

	work, err := ParseMinutes(workInput)
	if err != nil {
		errs = append(errs, fmt.Errorf("work minutes: %w", err))
		work = domain.MinWorkMinutes
	}
	brk, err := ParseMinutes(breakInput)
	if err != nil {
		errs = append(errs, fmt.Errorf("break minutes: %w", err))
		brk = domain.MinBreakMinutes
	}

	return FromMinutes(work, brk), errs
}

// Pending holds the candidate values while the settings form is open.
// It is never merged into the timer on cancel; dropping it is enough.
type Pending struct {
	Work  string
	Break string
}

// Open pre-fills a Pending from the current timer configuration.
func Open(state domain.TimerState) Pending {
	return Pending{
		Work:  strconv.Itoa(state.WorkMinutes()),
		Break: strconv.Itoa(state.BreakMinutes()),
	}
}
