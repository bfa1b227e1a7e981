package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hammamikhairi/tomato/internal/logger"
)

func TestManualFiresOncePerInterval(t *testing.T) {
	m := NewManual()
	var n int
	m.Every(context.Background(), time.Second, func(context.Context) { n++ })

	m.Advance(999 * time.Millisecond)
	if n != 0 {
		t.Fatalf("expected no tick before a full second, got %d", n)
	}
	m.Advance(1 * time.Millisecond)
	if n != 1 {
		t.Fatalf("expected 1 tick, got %d", n)
	}
	m.Advance(5 * time.Second)
	if n != 6 {
		t.Fatalf("expected 6 ticks, got %d", n)
	}
}

func TestManualStopFromCallback(t *testing.T) {
	m := NewManual()
	var n int
	var s Stopper
	s = m.Every(context.Background(), time.Second, func(context.Context) {
		n++
		if n == 3 {
			s.Stop()
		}
	})

	m.Advance(10 * time.Second)
	if n != 3 {
		t.Fatalf("expected schedule to stop after 3 ticks, got %d", n)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending schedules, got %d", m.Pending())
	}
}

func TestManualSkipsCancelledContext(t *testing.T) {
	m := NewManual()
	ctx, cancel := context.WithCancel(context.Background())
	var n int
	m.Every(ctx, time.Second, func(context.Context) { n++ })

	cancel()
	m.Advance(3 * time.Second)
	if n != 0 {
		t.Fatalf("expected no ticks after cancel, got %d", n)
	}
}

func TestTickerDeliversAndStops(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	tk := NewTicker(log)

	var n atomic.Int32
	s := tk.Every(context.Background(), 20*time.Millisecond, func(context.Context) { n.Add(1) })
	if tk.Active() != 1 {
		t.Fatalf("expected 1 active schedule, got %d", tk.Active())
	}

	time.Sleep(110 * time.Millisecond)
	s.Stop()
	s.Stop() // idempotent
	if tk.Active() != 0 {
		t.Fatalf("expected 0 active schedules, got %d", tk.Active())
	}

	got := n.Load()
	if got == 0 {
		t.Fatal("expected at least one tick")
	}

	time.Sleep(80 * time.Millisecond)
	if after := n.Load(); after > got+1 {
		t.Fatalf("ticks kept arriving after Stop: %d -> %d", got, after)
	}
}

func TestTickerStopsWithParentContext(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	tk := NewTicker(log, WithMinInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32
	tk.Every(ctx, time.Nanosecond, func(context.Context) { n.Add(1) })

	time.Sleep(55 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	got := n.Load()

	time.Sleep(60 * time.Millisecond)
	if n.Load() != got {
		t.Fatalf("ticks kept arriving after cancel: %d -> %d", got, n.Load())
	}
	if got > 10 {
		t.Fatalf("min interval not applied, got %d ticks", got)
	}
}
