package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   Level
		wantOK bool
	}{
		{"off", LevelOff, true},
		{"quiet", LevelOff, true},
		{"", LevelNormal, true},
		{"INFO", LevelNormal, true},
		{"debug", LevelVerbose, true},
		{" verbose ", LevelVerbose, true},
		{"loud", LevelNormal, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug line written at normal level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[INF]") || !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("expected info line, got %q", buf.String())
	}

	buf.Reset()
	log.SetLevel(LevelOff)
	if log.GetLevel() != LevelOff {
		t.Fatalf("level = %s, want off", log.GetLevel())
	}
	log.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when off, got %q", buf.String())
	}
}
