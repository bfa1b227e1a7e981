package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/tomato/internal/logger"
)

func collect(lines *[]string) PrintFunc {
	return func(format string, a ...interface{}) {
		*lines = append(*lines, fmt.Sprintf(format, a...))
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
}

func TestCLINotifierFormatting(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), collect(&lines), WithNow(fixedNow))
	ctx := context.Background()

	n.Notify(ctx, "settings applied")
	n.NotifyUrgent(ctx, "break time")

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, want := range []string{"settings applied", "break time"} {
		if !strings.Contains(lines[i], "09:30") || !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want stamp and %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[1], "🍅") {
		t.Errorf("completion line missing tag: %q", lines[1])
	}
	if strings.Contains(lines[0], bell) || strings.Contains(lines[1], bell) {
		t.Error("bell rang without WithBell")
	}
}

func TestCLINotifierBellOnlyOnCompletion(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), collect(&lines), WithNow(fixedNow), WithBell(true))
	ctx := context.Background()

	n.Notify(ctx, "settings applied")
	n.NotifyUrgent(ctx, "work done")

	if strings.Contains(lines[0], bell) {
		t.Errorf("status line rang the bell: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], bell) {
		t.Errorf("completion line should end with the bell: %q", lines[1])
	}
}
