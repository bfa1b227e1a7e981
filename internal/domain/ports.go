package domain

import "context"

// Notifier delivers messages to the user. Implementations can write to
// the terminal, play a tone, or both.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Renderer receives a copy of the timer state after every mutation.
// Render must not call back into the engine synchronously.
type Renderer interface {
	Render(state TimerState)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}
