// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type renders the timer panel (time, mode, progress bar,
// completed count) above an input prompt. It implements
// domain.Renderer: the engine pushes a snapshot after every change and
// the UI redraws from it. All other output is printed above the rendered
// area via Program.Println / Printf so concurrent writes never garble
// the display.
package display

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/tomato/internal/domain"
	prog "github.com/hammamikhairi/tomato/internal/progress"
	"github.com/hammamikhairi/tomato/internal/settings"
)

// ── Styles ───────────────────────────────────────────────────────

const (
	workColor   = "#f87171"
	breakColor  = "#4ade80"
	pausedColor = "#71717a"
)

var (
	workStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(workColor)).
			Bold(true)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(breakColor)).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(pausedColor))

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fafafa")).
			Bold(true).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	// ── Output styles ──

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

const promptText = "tomato> "

// ── UI ───────────────────────────────────────────────────────────

// Compile-time interface check.
var _ domain.Renderer = (*UI)(nil)

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// [UI.Render], [UI.Println], [UI.Printf], [UI.OpenSettings] and read from
// [UI.InputChan] / [UI.SettingsChan] at any time after [UI.WaitReady]
// returns.
type UI struct {
	program    atomic.Pointer[tea.Program]
	labels     Labels
	inputCh    chan string
	settingsCh chan settings.Pending
	readyCh    chan struct{}
	quitCh     chan struct{}
	done       atomic.Bool

	mu      sync.Mutex
	initial domain.TimerState
}

// NewUI creates the display showing initial until the first Render.
// Call Run() to start.
func NewUI(initial domain.TimerState, labels Labels) *UI {
	return &UI{
		labels:     labels,
		initial:    initial,
		inputCh:    make(chan string, 16),
		settingsCh: make(chan settings.Pending, 4),
		readyCh:    make(chan struct{}),
		quitCh:     make(chan struct{}),
	}
}

// Render delivers a timer snapshot to the event loop. Before Run it only
// replaces the initial state.
func (u *UI) Render(state domain.TimerState) {
	if p := u.live(); p != nil {
		p.Send(stateMsg(state))
		return
	}
	u.mu.Lock()
	if state.Version >= u.initial.Version {
		u.initial = state
	}
	u.mu.Unlock()
}

// OpenSettings shows the settings form pre-filled with pending.
func (u *UI) OpenSettings(pending settings.Pending) {
	if p := u.live(); p != nil {
		p.Send(openSettingsMsg(pending))
	}
}

// live returns the running program, or nil before Run and after quit.
func (u *UI) live() *tea.Program {
	if u.done.Load() {
		return nil
	}
	return u.program.Load()
}

// Println prints a line above the panel. Thread-safe. Falls back to
// fmt.Println when the program is not running.
func (u *UI) Println(a ...interface{}) {
	if p := u.live(); p != nil {
		p.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the panel. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if p := u.live(); p != nil {
		p.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed prompt lines. An empty line is sent too:
// it is the primary action.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// SettingsChan returns submitted settings forms. Cancelled forms are
// never sent.
func (u *UI) SettingsChan() <-chan settings.Pending { return u.settingsCh }

// PrintChat prints a conversational line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("tomato") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if p := u.program.Load(); p != nil {
		p.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	u.mu.Lock()
	initial := u.initial
	u.mu.Unlock()

	m := newModel(initial, u.labels, u.inputCh, u.settingsCh, u.readyCh)
	m.echoFn = u.PrintUserInput

	p := tea.NewProgram(m)
	u.program.Store(p)
	_, err := p.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	state      domain.TimerState
	labels     Labels
	input      textinput.Model
	form       settingsForm
	workBar    progress.Model
	breakBar   progress.Model
	inputCh    chan<- string
	settingsCh chan<- settings.Pending
	readyCh    chan struct{}
	echoFn     func(string) // prints user input into scrollback
	width      int
}

// settingsForm is the two-field modal. Its contents are the pending
// settings; closing it without submitting drops them.
type settingsForm struct {
	open  bool
	focus int // 0 = work, 1 = break
	work  textinput.Model
	brk   textinput.Model
}

// Messages.
type (
	stateMsg        domain.TimerState
	openSettingsMsg settings.Pending
)

func newModel(state domain.TimerState, labels Labels, inputCh chan<- string, settingsCh chan<- settings.Pending, readyCh chan struct{}) model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = promptText
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	return model{
		state:      state,
		labels:     labels,
		input:      ti,
		form:       settingsForm{work: newField(), brk: newField()},
		workBar:    progress.New(progress.WithSolidFill(workColor), progress.WithWidth(40)),
		breakBar:   progress.New(progress.WithSolidFill(breakColor), progress.WithWidth(40)),
		inputCh:    inputCh,
		settingsCh: settingsCh,
		readyCh:    readyCh,
	}
}

func newField() textinput.Model {
	f := textinput.New()
	f.Prompt = ""
	f.CharLimit = 4
	f.Width = 5
	return f
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		signalReady(m.readyCh),
		tea.SetWindowTitle(m.titleStr()),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.form.open {
			return m.updateForm(msg)
		}
		if msg.Type == tea.KeyEnter {
			v := m.input.Value()
			m.input.Reset()
			m.inputCh <- v
			if strings.TrimSpace(v) == "" {
				return m, nil
			}
			// Echo outside Update so it won't deadlock on msgs.
			echoFn := m.echoFn
			return m, func() tea.Msg {
				if echoFn != nil {
					echoFn(v)
				}
				return nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = len(promptText)
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		barW := min(max(msg.Width-4, 10), 60)
		m.workBar.Width = barW
		m.breakBar.Width = barW
		return m, nil

	case stateMsg:
		s := domain.TimerState(msg)
		if s.Version < m.state.Version {
			return m, nil
		}
		m.state = s
		return m, tea.SetWindowTitle(m.titleStr())

	case openSettingsMsg:
		m.form.open = true
		m.form.focus = 0
		m.form.work.SetValue(msg.Work)
		m.form.brk.SetValue(msg.Break)
		m.form.work.Focus()
		m.form.brk.Blur()
		m.input.Blur()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateForm handles keys while the settings form is open.
func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.form.focus = 1 - m.form.focus
		if m.form.focus == 0 {
			m.form.work.Focus()
			m.form.brk.Blur()
		} else {
			m.form.brk.Focus()
			m.form.work.Blur()
		}
		return m, nil
	case tea.KeyEnter:
		m.settingsCh <- settings.Pending{Work: m.form.work.Value(), Break: m.form.brk.Value()}
		m.closeForm()
		return m, nil
	}

	var cmd tea.Cmd
	if m.form.focus == 0 {
		m.form.work, cmd = m.form.work.Update(msg)
	} else {
		m.form.brk, cmd = m.form.brk.Update(msg)
	}
	return m, cmd
}

func (m *model) closeForm() {
	m.form.open = false
	m.form.work.Blur()
	m.form.brk.Blur()
	m.input.Focus()
}

func (m model) titleStr() string {
	return fmt.Sprintf("Tomato — %s %s", prog.Clock(m.state.Remaining), m.labels.ModeLabel(m.state.Mode))
}

func (m model) modeStyle() lipgloss.Style {
	if m.state.Mode == domain.ModeWork {
		return workStyle
	}
	return breakStyle
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderPanel())
	b.WriteString("\n\n")

	if m.form.open {
		b.WriteString(m.renderForm())
		return b.String()
	}

	b.WriteString(secondaryStyle.Render(fmt.Sprintf("  "+m.labels.PromptHint, m.labels.Action(m.state.Running))))
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderPanel() string {
	s := m.state
	style := m.modeStyle()

	status := style.Render(m.labels.ModeLabel(s.Mode))
	if !s.Running {
		status += pausedStyle.Render(" · " + m.labels.Paused)
	}

	bar := m.workBar
	if s.Mode == domain.ModeBreak {
		bar = m.breakBar
	}

	lines := []string{
		"  " + style.Render(m.labels.Subtitle(s.Mode)),
		"",
		clockStyle.Render(prog.Clock(s.Remaining)) + "  " + status,
		"  " + bar.ViewAs(prog.Fraction(s)),
		"  " + labelStyle.Render(fmt.Sprintf("%s: %d", m.labels.Completed, s.CompletedWork)),
	}
	return strings.Join(lines, "\n")
}

func (m model) renderForm() string {
	row := func(label string, f textinput.Model, lo, hi int) string {
		return fmt.Sprintf("%-16s %s %s", label, f.View(), secondaryStyle.Render(fmt.Sprintf("(%d-%d)", lo, hi)))
	}
	body := strings.Join([]string{
		m.modeStyle().Render(m.labels.SettingsTitle),
		row(m.labels.WorkField, m.form.work, domain.MinWorkMinutes, domain.MaxWorkMinutes),
		row(m.labels.BreakField, m.form.brk, domain.MinBreakMinutes, domain.MaxBreakMinutes),
		secondaryStyle.Render(m.labels.FormHint),
	}, "\n")
	return formStyle.Render(body)
}
