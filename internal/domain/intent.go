package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentToggle
	IntentStart
	IntentPause
	IntentReset
	IntentOpenSettings
	IntentApplySettings // payload: "<work> <break>"
	IntentStatus
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentToggle:
		return "toggle"
	case IntentStart:
		return "start"
	case IntentPause:
		return "pause"
	case IntentReset:
		return "reset"
	case IntentOpenSettings:
		return "open_settings"
	case IntentApplySettings:
		return "apply_settings"
	case IntentStatus:
		return "status"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string
}
