package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theimaginaryfoundation/mood-assistant/mood"
	"github.com/theimaginaryfoundation/mood-assistant/mood/logging"
	"github.com/theimaginaryfoundation/mood-assistant/mood/sqlitelog"
)

type fixedVerse string

func (v fixedVerse) FetchVerse(context.Context, mood.Category) string { return string(v) }

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("mood-assistant", flag.ContinueOnError)
	cfg, err := parseFlags(fs, nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Classifier != classifierPolarity {
		t.Fatalf("Classifier=%q", cfg.Classifier)
	}
	if cfg.Store != storeCSV || cfg.LogPath != "mood_log.csv" {
		t.Fatalf("Store=%q LogPath=%q", cfg.Store, cfg.LogPath)
	}
	if cfg.VerseBaseURL != mood.DefaultVerseBaseURL || cfg.Language != "ar" {
		t.Fatalf("VerseBaseURL=%q Language=%q", cfg.VerseBaseURL, cfg.Language)
	}
	if !cfg.interactive() {
		t.Fatalf("expected interactive mode without -text")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("mood-assistant", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-log", "data/./log.csv",
		"-store", " SQLite ",
		"-db", "data/mood.sqlite",
		"-classifier", "LABEL",
		"-model", "gpt-5-mini",
		"-api-key", "k",
		"-verse-base-url", "http://localhost:9999/v1/ayah",
		"-lang", "en.asad",
		"-chart-style", "scatter",
		"-text", "I feel great",
		"-log-level", "debug",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.LogPath != filepath.Clean("data/log.csv") {
		t.Fatalf("LogPath=%q", cfg.LogPath)
	}
	if cfg.Store != storeSQLite || cfg.DBPath != filepath.Clean("data/mood.sqlite") {
		t.Fatalf("Store=%q DBPath=%q", cfg.Store, cfg.DBPath)
	}
	if cfg.Classifier != classifierLabel || cfg.Model != "gpt-5-mini" || cfg.APIKey != "k" {
		t.Fatalf("Classifier=%q Model=%q APIKey=%q", cfg.Classifier, cfg.Model, cfg.APIKey)
	}
	if cfg.Language != "en.asad" || cfg.ChartStyle != "scatter" {
		t.Fatalf("Language=%q ChartStyle=%q", cfg.Language, cfg.ChartStyle)
	}
	if cfg.interactive() {
		t.Fatalf("-text should select one-shot mode")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("expected error")
	}
	bad := defaultConfig()
	bad.Classifier = "vader"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected classifier error")
	}
	bad = defaultConfig()
	bad.Store = "postgres"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected store error")
	}
	bad = defaultConfig()
	bad.Classifier = classifierLabel
	bad.Model = ""
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "-model") {
		t.Fatalf("err=%v", err)
	}
	bad = defaultConfig()
	bad.ChartStyle = "bars"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected chart style error")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := loadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}

	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte("MOOD_ASSISTANT_TEST_KEY=from-file\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MOOD_ASSISTANT_TEST_KEY", "")
	os.Unsetenv("MOOD_ASSISTANT_TEST_KEY")
	if err := loadEnvFile(p); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("MOOD_ASSISTANT_TEST_KEY"); got != "from-file" {
		t.Fatalf("MOOD_ASSISTANT_TEST_KEY=%q", got)
	}
}

func TestBuildClassifier(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	c, err := buildClassifier(defaultConfig())
	if err != nil {
		t.Fatalf("polarity: %v", err)
	}
	if _, ok := c.(mood.PolarityClassifier); !ok {
		t.Fatalf("classifier=%T", c)
	}

	cfg := defaultConfig()
	cfg.Classifier = classifierLabel
	if _, err := buildClassifier(cfg); err == nil {
		t.Fatalf("expected missing key error")
	}
	cfg.APIKey = "k"
	c, err = buildClassifier(cfg)
	if err != nil {
		t.Fatalf("label: %v", err)
	}
	if _, ok := c.(mood.LabelClassifier); !ok {
		t.Fatalf("classifier=%T", c)
	}
}

func TestOpenHistory_SQLite(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Store = storeSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "mood.sqlite")
	h, closeFn, err := openHistory(cfg)
	if err != nil {
		t.Fatalf("openHistory: %v", err)
	}
	defer closeFn()
	if _, ok := h.(*sqlitelog.Store); !ok {
		t.Fatalf("history=%T", h)
	}
}

func TestRunOnce_PrintsAndLogs(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "mood_log.csv")
	history := mood.NewCSVLog(logPath)
	a := &mood.Assistant{
		Classifier: mood.PolarityClassifier{Scorer: mood.LexiconScorer{}},
		Verses:     fixedVerse("verse"),
		History:    history,
		Now:        func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.Local) },
		Log:        logging.Nop(),
	}

	var out bytes.Buffer
	if code := runOnce(context.Background(), &out, a, "I feel great today"); code != 0 {
		t.Fatalf("exit=%d", code)
	}
	for _, want := range []string{"إيجابي", "> verse", "✅ 💪 مارس رياضة", "logged_at=2026-10-19 08:30:00"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}

	entries, err := history.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 1 || entries[0].Category != mood.Positive {
		t.Fatalf("entries=%+v", entries)
	}
}

func TestRunOnce_BlankTextDoesNotLog(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "mood_log.csv")
	a := &mood.Assistant{
		Classifier: mood.PolarityClassifier{Scorer: mood.LexiconScorer{}},
		History:    mood.NewCSVLog(logPath),
		Log:        logging.Nop(),
	}

	var out bytes.Buffer
	if code := runOnce(context.Background(), &out, a, "   "); code != 0 {
		t.Fatalf("exit=%d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if _, err := os.Stat(logPath); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("log should not exist, stat err=%v", err)
	}
}

func TestParseFlags_BlankTextIsOneShot(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(flag.NewFlagSet("mood-assistant", flag.ContinueOnError), []string{"-text", "   "})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.interactive() {
		t.Fatalf("blank -text should still select one-shot mode")
	}
}

func TestRun_ConfigErrorExitsTwo(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet("mood-assistant", flag.ContinueOnError)
	if code := run(fset, []string{"-store", "postgres", "-env-file", ""}); code != 2 {
		t.Fatalf("exit=%d, want 2", code)
	}
}

func TestRun_BlankTextIsNoop(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "mood_log.csv")
	fset := flag.NewFlagSet("mood-assistant", flag.ContinueOnError)
	code := run(fset, []string{"-text", "   ", "-log", logPath, "-env-file", "", "-log-level", "error"})
	if code != 0 {
		t.Fatalf("exit=%d", code)
	}
	if _, err := os.Stat(logPath); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("log should not exist, stat err=%v", err)
	}
}

func TestRun_OneShotClosesSQLiteStore(t *testing.T) {
	t.Parallel()

	verses := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer verses.Close()

	dbPath := filepath.Join(t.TempDir(), "mood.sqlite")
	fset := flag.NewFlagSet("mood-assistant", flag.ContinueOnError)
	code := run(fset, []string{
		"-store", "sqlite",
		"-db", dbPath,
		"-text", "I feel great today",
		"-verse-base-url", verses.URL,
		"-env-file", "",
		"-log-level", "error",
	})
	if code != 0 {
		t.Fatalf("exit=%d", code)
	}

	st, err := sqlitelog.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	entries, err := st.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 1 || entries[0].Category != mood.Positive {
		t.Fatalf("entries=%+v", entries)
	}
}
