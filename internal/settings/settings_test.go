package settings

import (
	"errors"
	"testing"

	"github.com/hammamikhairi/tomato/internal/domain"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"25", 25, false},
		{"  7", 7, false},
		{"12min", 12, false},
		{"3.9", 3, false},
		{"-4", -4, false},
		{"+9", 9, false},
		{"0", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"-", 0, true},
		{"x5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMinutes(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidSettingsInput) {
					t.Fatalf("expected ErrInvalidSettingsInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseClampsAndDefaults(t *testing.T) {
	tests := []struct {
		name       string
		work, brk  string
		want       Durations
		wantErrors int
	}{
		{"in range", "30", "10", Durations{30, 10}, 0},
		{"over max", "70", "45", Durations{60, 30}, 0},
		{"zero break", "70", "0", Durations{60, 1}, 1},
		{"garbage work", "abc", "5", Durations{1, 5}, 1},
		{"both missing", "", "", Durations{1, 1}, 2},
		{"negative", "-10", "-3", Durations{1, 1}, 0},
		{"overflow", "99999999999999999999999", "5", Durations{60, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := Parse(tt.work, tt.brk)
			if got != tt.want {
				t.Fatalf("Parse(%q, %q) = %+v, want %+v", tt.work, tt.brk, got, tt.want)
			}
			if len(errs) != tt.wantErrors {
				t.Fatalf("expected %d errors, got %v", tt.wantErrors, errs)
			}
		})
	}
}

func TestDurationsSeconds(t *testing.T) {
	d := FromMinutes(70, 0)
	if d.WorkSeconds() != 3600 || d.BreakSeconds() != 60 {
		t.Fatalf("got %ds/%ds, want 3600s/60s", d.WorkSeconds(), d.BreakSeconds())
	}
}

func TestOpenPrefillsCurrentMinutes(t *testing.T) {
	state := domain.NewTimerState(40, 12)
	p := Open(state)
	if p.Work != "40" || p.Break != "12" {
		t.Fatalf("got %+v", p)
	}
}
