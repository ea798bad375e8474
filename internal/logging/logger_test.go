package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(Config{Level: LevelWarn, Format: FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Info().Msg("hidden")
	l.Warn().Str("term", "Keynote").Msg("shown")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	var line map[string]any
	if err := json.Unmarshal([]byte(out), &line); err != nil {
		t.Fatalf("expected a single json line, got %q: %v", out, err)
	}
	if line["term"] != "Keynote" || line["level"] != "warn" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewLoggerConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(Config{Level: LevelDebug, Format: FormatConsole}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Debug().Msg("console line")
	if !strings.Contains(buf.String(), "console line") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected console formatted output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      Level
		want    zerolog.Level
		wantErr bool
	}{
		{in: LevelTrace, want: zerolog.TraceLevel},
		{in: LevelWarn, want: zerolog.WarnLevel},
		{in: LevelFatal, want: zerolog.FatalLevel},
		{in: "loud", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(string(tc.in), func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ParseLevel(%q) = %v, %v", tc.in, got, err)
			}
		})
	}
}
