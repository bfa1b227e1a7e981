// Tomato is a Pomodoro timer for the terminal.
//
// Usage:
//
//	tomato [-work 25] [-break 5] [-lang ja] [-no-sound] [-verbose] [-quiet]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/tomato/internal/clock"
	"github.com/hammamikhairi/tomato/internal/config"
	"github.com/hammamikhairi/tomato/internal/conversation"
	"github.com/hammamikhairi/tomato/internal/display"
	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/engine"
	"github.com/hammamikhairi/tomato/internal/logger"
	"github.com/hammamikhairi/tomato/internal/progress"
	"github.com/hammamikhairi/tomato/internal/settings"
	"github.com/hammamikhairi/tomato/internal/sound"
)

func main() {
	_ = godotenv.Load()

	defaultConfig, _ := config.DefaultPath()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".tomato-logs/tomato.log", "file to write logs to (use \"stderr\" to log to console)")
	configPath := flag.String("config", defaultConfig, "path to the YAML config file")
	work := flag.Int("work", 0, "work interval in minutes (1-60)")
	brk := flag.Int("break", 0, "break interval in minutes (1-30)")
	lang := flag.String("lang", "", "label language, e.g. en or ja (defaults to $LANG)")
	noSound := flag.Bool("no-sound", false, "disable the completion tone")
	flag.Parse()

	// Load keeps every value it could read; report the rest.
	cfg, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config: %v\n", err)
	}
	if *work != 0 {
		cfg.WorkMinutes = *work
	}
	if *brk != 0 {
		cfg.BreakMinutes = *brk
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	if cfg.Language == "" {
		cfg.Language = os.Getenv("LANG")
	}
	if *noSound {
		cfg.Sound = false
	}

	// Configure logger.
	logLevel, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "warning: unknown log level %q, using normal\n", cfg.LogLevel)
	}
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libs (the audio backend) log through the standard
	// package; keep them off the terminal too.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context, cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	labels := display.LabelsFor(cfg.Language)
	ui := display.NewUI(domain.NewTimerState(domain.DefaultWorkMinutes, domain.DefaultBreakMinutes), labels)

	var player sound.PCMPlayer
	if cfg.Sound {
		p, err := sound.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, completion tone disabled: %v", err)
		} else {
			player = p
		}
	} else {
		log.Info("completion tone disabled")
	}
	// Without a tone the terminal bell marks completions.
	textNotifier := conversation.NewCLINotifier(log, ui.Printf, conversation.WithBell(player == nil))
	chime := sound.NewChime(player, sound.DefaultTone(), log)
	notifier := sound.NewChimingNotifier(textNotifier, chime, log)

	eng := engine.New(clock.NewTicker(log), notifier, log,
		engine.WithDurations(cfg.WorkMinutes, cfg.BreakMinutes),
		engine.WithRenderer(ui),
	)
	ui.Render(eng.Snapshot())

	d := eng.Durations()
	log.Info("tomato starting (work=%dm, break=%dm, lang=%q, log=%s)", d.WorkMinutes, d.BreakMinutes, cfg.Language, log.GetLevel())

	app := &cliApp{
		engine:   eng,
		parser:   conversation.NewKeywordParser(log),
		notifier: notifier,
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Press enter to start or pause. Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	eng.Pause()
	cancel()

	// Cut off a tone still playing and let its goroutine finish.
	chime.Stop()
	chime.Wait()
}

type cliApp struct {
	engine   *engine.Engine
	parser   domain.IntentParser
	notifier domain.Notifier
	log      *logger.Logger
	ui       *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	inputCh := a.ui.InputChan()
	settingsCh := a.ui.SettingsChan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.ui.QuitChan():
			return
		case pending := <-settingsCh:
			a.applySettings(ctx, pending.Work, pending.Break)
		case input := <-inputCh:
			intent, err := a.parser.Parse(ctx, input)
			if err != nil {
				a.log.Error("parsing input: %v", err)
				a.ui.PrintUrgent(fmt.Sprintf("Could not read %q: %v", input, err))
				continue
			}
			a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
			if !a.handleIntent(ctx, intent) {
				return
			}
		}
	}
}

// handleIntent dispatches one command. Returns false when the app
// should exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentToggle:
		a.engine.Toggle(ctx)
	case domain.IntentStart:
		a.engine.Start(ctx)
	case domain.IntentPause:
		a.engine.Pause()
	case domain.IntentReset:
		a.engine.Reset()
	case domain.IntentOpenSettings:
		a.ui.OpenSettings(settings.Open(a.engine.Snapshot()))
	case domain.IntentApplySettings:
		w, b := conversation.SplitSettings(intent.Payload)
		a.applySettings(ctx, w, b)
	case domain.IntentStatus:
		a.status()
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		a.engine.Pause()
		a.ui.PrintChat("Bye. Good work today.")
		return false
	case domain.IntentUnknown:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", intent.Payload))
	}
	return true
}

func (a *cliApp) applySettings(ctx context.Context, work, brk string) {
	d := a.engine.ApplySettings(work, brk)
	msg := fmt.Sprintf("Work %d min, break %d min. Timer reset to work.", d.WorkMinutes, d.BreakMinutes)
	if err := a.notifier.Notify(ctx, msg); err != nil {
		a.log.Error("notify settings: %v", err)
		a.ui.PrintUrgent(msg)
	}
}

func (a *cliApp) status() {
	s := a.engine.Snapshot()
	state := "paused"
	if s.Running {
		state = "running"
	}
	a.ui.PrintChat(fmt.Sprintf("%s · %s left (%d%%) · %s · %d completed · work %dm / break %dm",
		s.Mode, progress.Clock(s.Remaining), progress.Percent(s), state,
		s.CompletedWork, s.WorkMinutes(), s.BreakMinutes()))
}

func (a *cliApp) showHelp() {
	a.ui.PrintChat("Commands:")
	a.ui.PrintHint("  enter / toggle     Start or pause the timer")
	a.ui.PrintHint("  start / pause      Start or pause explicitly")
	a.ui.PrintHint("  reset              Refill the current interval")
	a.ui.PrintHint("  settings           Edit work/break minutes")
	a.ui.PrintHint("  set <work> <brk>   Apply durations directly (e.g. \"set 50 10\")")
	a.ui.PrintHint("  status             Show mode, time left, and completed count")
	a.ui.PrintHint("  help               Show this message")
	a.ui.PrintHint("  quit / exit        Exit")
}
