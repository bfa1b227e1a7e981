// Package conversation provides command parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches typed commands to intents using keywords and
// simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// setPattern captures the two values of "set <work> <break>". The values
// are passed through raw; the engine sanitizes them.
var setPattern = regexp.MustCompile(`(?i)^(?:set|durations?)\s+(\S+)\s+(\S+)$`)

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(toggle|t|space)$`), domain.IntentToggle},
		{regexp.MustCompile(`(?i)^(start|go|begin|resume|s)$`), domain.IntentStart},
		{regexp.MustCompile(`(?i)^(pause|stop|wait|brb|p)$`), domain.IntentPause},
		{regexp.MustCompile(`(?i)^(reset|restart|r)$`), domain.IntentReset},
		{regexp.MustCompile(`(?i)^(settings|config|configure|prefs|c)$`), domain.IntentOpenSettings},
		{regexp.MustCompile(`(?i)^(status|info|where|progress)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), domain.IntentQuit},
	}
	return p
}

// Parse converts user input into an intent. An empty line is the primary
// action and toggles the timer.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentToggle}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	if m := setPattern.FindStringSubmatch(trimmed); m != nil {
		return &domain.Intent{Type: domain.IntentApplySettings, Payload: m[1] + " " + m[2]}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// SplitSettings splits an IntentApplySettings payload into its work and
// break fields. Missing fields come back empty.
func SplitSettings(payload string) (work, brk string) {
	fields := strings.Fields(payload)
	if len(fields) > 0 {
		work = fields[0]
	}
	if len(fields) > 1 {
		brk = fields[1]
	}
	return work, brk
}
