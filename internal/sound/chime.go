package sound

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/logger"
)

// PCMPlayer plays a buffer of raw samples, blocking until done.
// *Player satisfies it.
type PCMPlayer interface {
	Play(pcm []byte) error
}

// Chime plays the completion tone in the background. A Chime without a
// player is silent and reports ErrNotificationUnavailable.
type Chime struct {
	player PCMPlayer
	log    *logger.Logger
	pcm    []byte
	busy   atomic.Bool
	wg     sync.WaitGroup
}

// NewChime pre-renders tone for player. player may be nil.
func NewChime(player PCMPlayer, tone Tone, log *logger.Logger) *Chime {
	return &Chime{
		player: player,
		log:    log,
		pcm:    tone.PCM(SampleRate),
	}
}

// Ring starts the tone and returns immediately. If the previous tone is
// still playing the request is dropped.
func (c *Chime) Ring(ctx context.Context) error {
	if c.player == nil {
		return domain.ErrNotificationUnavailable
	}
	if !c.busy.CompareAndSwap(false, true) {
		c.log.Debug("chime: already ringing, skipped")
		return nil
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.busy.Store(false)
		if err := c.player.Play(c.pcm); err != nil {
			c.log.Warn("chime: playback failed: %v", err)
		}
	}()
	return nil
}

// Stop cuts off the tone in flight when the player supports it.
func (c *Chime) Stop() {
	if s, ok := c.player.(interface{ Stop() }); ok {
		s.Stop()
	}
}

// Wait blocks until any tone in flight has finished.
func (c *Chime) Wait() {
	c.wg.Wait()
}
