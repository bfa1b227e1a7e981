package domain

import "errors"

// Sentinel errors used across layers.
var (
	// ErrInvalidSettingsInput marks a duration field that is missing or
	// not a number. Callers recover by substituting the minimum.
	ErrInvalidSettingsInput = errors.New("invalid settings input")

	// ErrNotificationUnavailable means the completion tone could not be
	// produced. It is logged and never shown to the user.
	ErrNotificationUnavailable = errors.New("notification unavailable")
)
