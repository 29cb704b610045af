package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)

	SetLevel(LevelInfo)
	Debugf("hidden %d", 1)
	Infof("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug line logged at info level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[INFO] shown 2") {
		t.Errorf("info line missing: %q", buf.String())
	}

	buf.Reset()
	SetLevel(LevelWarn)
	Infof("quiet")
	Warnf("⚠️ loud %s", "warning")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "[WARN] ⚠️ loud warning") {
		t.Errorf("warn level output wrong: %q", buf.String())
	}
}

func TestPlainMessageKeepsPercent(t *testing.T) {
	buf := capture(t)
	Errorf("100% broken")
	if !strings.Contains(buf.String(), "[ERROR] 100% broken") {
		t.Errorf("message without args should not be formatted: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"":        LevelInfo,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"Warn":    LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Error("ParseLevel accepted unknown level")
	}
}

func TestConfigure(t *testing.T) {
	capture(t)

	if err := Configure("error", false); err != nil || CurrentLevel() != LevelError {
		t.Errorf("Configure(error) = %v, level %v", err, CurrentLevel())
	}
	if err := Configure("error", true); err != nil || CurrentLevel() != LevelDebug {
		t.Errorf("--debug should win: %v, level %v", err, CurrentLevel())
	}
	if err := Configure("chatty", false); err == nil {
		t.Error("expected error for unknown level")
	}
	if CurrentLevel() != LevelDebug {
		t.Error("invalid level changed the current level")
	}
}

func TestRequest(t *testing.T) {
	buf := capture(t)

	Request("GET", "/api/figure?kind=pie", 200, 1500*time.Microsecond)
	if buf.Len() != 0 {
		t.Errorf("access log written at info level: %q", buf.String())
	}

	SetLevel(LevelDebug)
	Request("GET", "/api/figure?kind=pie", 200, 1500*time.Microsecond)
	if !strings.Contains(buf.String(), "[DEBUG] ↔️  GET /api/figure?kind=pie 200 1.5ms") {
		t.Errorf("unexpected access log %q", buf.String())
	}
}
