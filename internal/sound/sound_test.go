package sound

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/logger"
)

func samples(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return out
}

func peak(s []int16) int {
	p := 0
	for _, v := range s {
		a := int(v)
		if a < 0 {
			a = -a
		}
		p = max(p, a)
	}
	return p
}

func TestDefaultTonePCM(t *testing.T) {
	pcm := DefaultTone().PCM(SampleRate)
	if len(pcm) != SampleRate/2*2 {
		t.Fatalf("expected %d bytes for half a second, got %d", SampleRate, len(pcm))
	}

	s := samples(pcm)
	if s[0] != 0 {
		t.Fatalf("sine should start at zero, got %d", s[0])
	}

	tenth := len(s) / 10
	head, tail := peak(s[:tenth]), peak(s[len(s)-tenth:])
	if head <= tail*5 {
		t.Fatalf("expected a fading envelope, head peak %d tail peak %d", head, tail)
	}
	if limit := int(DefaultStartGain*math.MaxInt16) + 1; head > limit {
		t.Fatalf("peak %d exceeds start gain limit %d", head, limit)
	}
}

func TestToneGainEnvelope(t *testing.T) {
	tone := DefaultTone()
	if g := tone.Gain(0); math.Abs(g-0.3) > 1e-9 {
		t.Fatalf("start gain = %v", g)
	}
	if g := tone.Gain(0.5); math.Abs(g-0.01) > 1e-9 {
		t.Fatalf("end gain = %v", g)
	}
	if (Tone{Duration: time.Second}).Gain(0.2) != 0 {
		t.Fatal("zero gains should be silent")
	}
}

type fakePlayer struct {
	mu      sync.Mutex
	plays   int
	release chan struct{}
	err     error
}

func (f *fakePlayer) Play(pcm []byte) error {
	f.mu.Lock()
	f.plays++
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakePlayer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

func TestChimeWithoutPlayerIsUnavailable(t *testing.T) {
	c := NewChime(nil, DefaultTone(), logger.New(logger.LevelOff, nil))
	if err := c.Ring(context.Background()); !errors.Is(err, domain.ErrNotificationUnavailable) {
		t.Fatalf("expected ErrNotificationUnavailable, got %v", err)
	}
}

func TestChimeDoesNotBlockAndSkipsOverlap(t *testing.T) {
	p := &fakePlayer{release: make(chan struct{})}
	c := NewChime(p, DefaultTone(), logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		c.Ring(ctx)
		c.Ring(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Ring blocked on playback")
	}

	close(p.release)
	c.Wait()
	if p.count() != 1 {
		t.Fatalf("expected overlapping ring to be skipped, got %d plays", p.count())
	}

	// Idle again, so the next ring plays.
	c.Ring(ctx)
	c.Wait()
	if p.count() != 2 {
		t.Fatalf("expected 2 plays, got %d", p.count())
	}
}

// stoppablePlayer plays until Stop is called, like the oto player.
type stoppablePlayer struct {
	started chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newStoppablePlayer() *stoppablePlayer {
	return &stoppablePlayer{started: make(chan struct{}, 1), stopped: make(chan struct{})}
}

func (p *stoppablePlayer) Play(pcm []byte) error {
	p.started <- struct{}{}
	<-p.stopped
	return nil
}

func (p *stoppablePlayer) Stop() {
	p.once.Do(func() { close(p.stopped) })
}

func TestChimeStopCutsTone(t *testing.T) {
	p := newStoppablePlayer()
	c := NewChime(p, DefaultTone(), logger.New(logger.LevelOff, nil))

	if err := c.Ring(context.Background()); err != nil {
		t.Fatalf("ring: %v", err)
	}
	<-p.started

	waited := make(chan struct{})
	go func() {
		c.Stop()
		c.Wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Stop")
	}
}

func TestChimeStopWithoutStoppablePlayer(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	NewChime(nil, DefaultTone(), log).Stop()
	NewChime(&fakePlayer{}, DefaultTone(), log).Stop()
}

func TestChimePlaybackErrorIsSwallowed(t *testing.T) {
	p := &fakePlayer{err: errors.New("device gone")}
	c := NewChime(p, DefaultTone(), logger.New(logger.LevelOff, nil))

	if err := c.Ring(context.Background()); err != nil {
		t.Fatalf("playback errors must not reach the caller: %v", err)
	}
	c.Wait()
}

// textNotifier collects messages for assertions.
type textNotifier struct {
	normal, urgent []string
}

func (n *textNotifier) Notify(_ context.Context, msg string) error {
	n.normal = append(n.normal, msg)
	return nil
}

func (n *textNotifier) NotifyUrgent(_ context.Context, msg string) error {
	n.urgent = append(n.urgent, msg)
	return nil
}

func TestChimingNotifier(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	text := &textNotifier{}
	p := &fakePlayer{}
	chime := NewChime(p, DefaultTone(), log)
	n := NewChimingNotifier(text, chime, log)
	ctx := context.Background()

	if err := n.Notify(ctx, "info"); err != nil {
		t.Fatal(err)
	}
	if err := n.NotifyUrgent(ctx, "done"); err != nil {
		t.Fatal(err)
	}
	chime.Wait()

	if len(text.normal) != 1 || len(text.urgent) != 1 {
		t.Fatalf("text notifier got %v / %v", text.normal, text.urgent)
	}
	if p.count() != 1 {
		t.Fatalf("expected one chime, got %d", p.count())
	}
}

func TestChimingNotifierSilentStillPrints(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	text := &textNotifier{}
	n := NewChimingNotifier(text, NewChime(nil, DefaultTone(), log), log)

	err := n.NotifyUrgent(context.Background(), "done")
	if !errors.Is(err, domain.ErrNotificationUnavailable) {
		t.Fatalf("expected wrapped ErrNotificationUnavailable, got %v", err)
	}
	if len(text.urgent) != 1 {
		t.Fatal("message must be printed even without audio")
	}
}
