package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// bell is the terminal alert character.
const bell = "\a"

var (
	stampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// NotifierOption configures a CLINotifier.
type NotifierOption func(*CLINotifier)

// WithBell rings the terminal bell on interval completions. Used when
// there is no audio device to play the tone.
func WithBell(on bool) NotifierOption {
	return func(n *CLINotifier) { n.bell = on }
}

// WithNow overrides the time source for the line stamps.
func WithNow(now func() time.Time) NotifierOption {
	return func(n *CLINotifier) { n.now = now }
}

// CLINotifier writes timer announcements to the terminal, each stamped
// with the wall-clock time it happened.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
	now     func() time.Time
	bell    bool
}

// NewCLINotifier creates a terminal notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc, opts ...NotifierOption) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	n := &CLINotifier{log: log, printFn: printFn, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify prints a status line, such as a settings confirmation.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s", n.line("·", noticeStyle, message))
	return nil
}

// NotifyUrgent announces a finished interval.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	out := n.line("🍅", alertStyle, message)
	if n.bell {
		out += bell
	}
	n.printFn("%s", out)
	return nil
}

func (n *CLINotifier) line(tag string, style lipgloss.Style, message string) string {
	return fmt.Sprintf("  %s %s %s",
		stampStyle.Render(n.now().Format("15:04")),
		tagStyle.Render(tag),
		style.Render(message))
}
