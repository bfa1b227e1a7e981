package domain

// Mode is the kind of interval currently counting down.
type Mode int

const (
	ModeWork Mode = iota
	ModeBreak
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeWork:
		return "work"
	case ModeBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m when an interval completes.
func (m Mode) Next() Mode {
	if m == ModeWork {
		return ModeBreak
	}
	return ModeWork
}

// Duration bounds, in minutes.
const (
	MinWorkMinutes  = 1
	MaxWorkMinutes  = 60
	MinBreakMinutes = 1
	MaxBreakMinutes = 30

	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// TimerState is the complete state of the Pomodoro timer. All durations
// are whole seconds.
type TimerState struct {
	WorkDuration  int
	BreakDuration int
	Mode          Mode
	Remaining     int
	Running       bool
	CompletedWork int

	// Version increases on every mutation. Renderers use it to drop
	// snapshots that arrive out of order.
	Version uint64
}

// NewTimerState returns the initial state: work mode, paused, full work
// duration remaining.
func NewTimerState(workMinutes, breakMinutes int) TimerState {
	return TimerState{
		WorkDuration:  workMinutes * 60,
		BreakDuration: breakMinutes * 60,
		Mode:          ModeWork,
		Remaining:     workMinutes * 60,
	}
}

// ActiveDuration returns the full length of the current mode's interval.
func (s TimerState) ActiveDuration() int {
	if s.Mode == ModeWork {
		return s.WorkDuration
	}
	return s.BreakDuration
}

// WorkMinutes returns the configured work length in minutes.
func (s TimerState) WorkMinutes() int { return s.WorkDuration / 60 }

// BreakMinutes returns the configured break length in minutes.
func (s TimerState) BreakMinutes() int { return s.BreakDuration / 60 }
