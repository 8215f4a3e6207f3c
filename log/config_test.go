package log

import (
	"testing"
	"time"
)

// TestParseLevel verifies level name round-trips and the unknown-name
// fallback.
func TestParseLevel(t *testing.T) {
	for _, level := range Levels() {
		if got := ParseLevel(level.String()); got != level {
			t.Errorf("ParseLevel(%q) = %v, want %v", level.String(), got, level)
		}
	}

	if got := ParseLevel("bogus"); got != DefaultLevel {
		t.Errorf("ParseLevel(bogus) = %v, want default", got)
	}
}

// TestLevelString verifies the trace level renders by name, not as an
// offset of a standard level.
func TestLevelString(t *testing.T) {
	if got := LevelTrace.String(); got != "trace" {
		t.Errorf("LevelTrace.String() = %q, want trace", got)
	}
}

// TestParseFormat verifies format name round-trips and the unknown-name
// fallback.
func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"pretty", FormatPretty},
		{"bogus", DefaultFormat},
		{"", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestParseTimeLayout verifies named layouts resolve and custom layouts
// pass through.
func TestParseTimeLayout(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"RFC3339", time.RFC3339},
		{"RFC3339Nano", time.RFC3339Nano},
		{"Kitchen", time.Kitchen},
		{"2006-01-02", "2006-01-02"},
		{"", DefaultTimeLayout},
	}

	for _, tt := range tests {
		if got := ParseTimeLayout(tt.input); got != tt.want {
			t.Errorf("ParseTimeLayout(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
