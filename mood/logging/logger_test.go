package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONToFileAndRedacts(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "app.log")
	l, err := New(Options{Level: "debug", OutputPath: p})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("component", "test").Info("hello", "api_key", "sk-secret", "mood", "positive")
	l.Sync()

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"hello"`) {
		t.Fatalf("missing msg: %s", s)
	}
	if strings.Contains(s, "sk-secret") {
		t.Fatalf("api key leaked: %s", s)
	}
	if !strings.Contains(s, `"component":"test"`) || !strings.Contains(s, `"mood":"positive"`) {
		t.Fatalf("missing fields: %s", s)
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var l *Logger
	l.Info("ignored", "k", "v")
	l.With("k", "v").Warn("ignored")
	l.Sync()
}
