package display

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/hammamikhairi/tomato/internal/domain"
)

// Labels is the user-facing text of the timer screen.
type Labels struct {
	WorkSubtitle  string
	BreakSubtitle string
	WorkLabel     string
	BreakLabel    string
	Start         string
	Pause         string
	Paused        string
	Completed     string
	SettingsTitle string
	WorkField     string
	BreakField    string
	FormHint      string
	PromptHint    string
}

var english = Labels{
	WorkSubtitle:  "Focus time",
	BreakSubtitle: "Break time",
	WorkLabel:     "Working",
	BreakLabel:    "On break",
	Start:         "Start",
	Pause:         "Pause",
	Paused:        "paused",
	Completed:     "Completed",
	SettingsTitle: "Settings",
	WorkField:     "Work minutes",
	BreakField:    "Break minutes",
	FormHint:      "enter apply · tab switch · esc cancel",
	PromptHint:    "enter: %s · type 'help' for commands",
}

var japanese = Labels{
	WorkSubtitle:  "集中時間",
	BreakSubtitle: "休憩時間",
	WorkLabel:     "作業中",
	BreakLabel:    "休憩中",
	Start:         "開始",
	Pause:         "一時停止",
	Paused:        "停止中",
	Completed:     "完了",
	SettingsTitle: "設定",
	WorkField:     "作業時間（分）",
	BreakField:    "休憩時間（分）",
	FormHint:      "enter 適用 · tab 切替 · esc キャンセル",
	PromptHint:    "enter: %s · 'help' でコマンド一覧",
}

// Order matters: the first tag is the fallback.
var (
	supported = []language.Tag{language.English, language.Japanese}
	labelSets = []Labels{english, japanese}
	matcher   = language.NewMatcher(supported)
)

// LabelsFor picks the label set closest to lang, which may be a BCP 47
// tag ("ja-JP") or a POSIX locale ("ja_JP.UTF-8"). Anything unknown gets
// English.
func LabelsFor(lang string) Labels {
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")

	_, idx := language.MatchStrings(matcher, lang)
	if idx < 0 || idx >= len(labelSets) {
		return english
	}
	return labelSets[idx]
}

// Subtitle returns the heading for mode.
func (l Labels) Subtitle(m domain.Mode) string {
	if m == domain.ModeWork {
		return l.WorkSubtitle
	}
	return l.BreakSubtitle
}

// ModeLabel returns the short status label for mode.
func (l Labels) ModeLabel(m domain.Mode) string {
	if m == domain.ModeWork {
		return l.WorkLabel
	}
	return l.BreakLabel
}

// Action returns the primary button text: what enter will do.
func (l Labels) Action(running bool) string {
	if running {
		return l.Pause
	}
	return l.Start
}
