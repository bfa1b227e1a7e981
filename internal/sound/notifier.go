package sound

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*ChimingNotifier)(nil)

// ChimingNotifier wraps a text notifier and rings the chime on urgent
// messages. Text is printed first so the user sees it even when the
// tone cannot play.
type ChimingNotifier struct {
	text  domain.Notifier
	chime *Chime
	log   *logger.Logger
}

// NewChimingNotifier creates a notifier that both prints and chimes.
func NewChimingNotifier(text domain.Notifier, chime *Chime, log *logger.Logger) *ChimingNotifier {
	return &ChimingNotifier{
		text:  text,
		chime: chime,
		log:   log,
	}
}

// Notify prints the message without sound.
func (n *ChimingNotifier) Notify(ctx context.Context, message string) error {
	return n.text.Notify(ctx, message)
}

// NotifyUrgent prints the message and rings the chime.
func (n *ChimingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	if err := n.chime.Ring(ctx); err != nil {
		return fmt.Errorf("chime: %w", err)
	}
	return nil
}
