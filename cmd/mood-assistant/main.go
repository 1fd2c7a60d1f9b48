package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/theimaginaryfoundation/mood-assistant/internal/app"
	"github.com/theimaginaryfoundation/mood-assistant/mood"
	"github.com/theimaginaryfoundation/mood-assistant/mood/logging"
	"github.com/theimaginaryfoundation/mood-assistant/mood/provider"
	"github.com/theimaginaryfoundation/mood-assistant/mood/sqlitelog"
)

func main() {
	os.Exit(run(flag.CommandLine, os.Args[1:]))
}

// run wires the assistant and returns the process exit code. Deferred cleanup runs before
// main calls os.Exit.
func run(fs *flag.FlagSet, args []string) int {
	cfg, err := parseFlags(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	logFile := cfg.LogFile
	if logFile == "" && cfg.interactive() {
		// The TUI owns the terminal; keep log lines out of it.
		logFile = "mood-assistant.log"
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, OutputPath: logFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	classifier, err := buildClassifier(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	history, closeHistory, err := openHistory(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	defer closeHistory()

	assistant := &mood.Assistant{
		Classifier: classifier,
		Verses:     mood.NewVerseClient(cfg.VerseBaseURL, cfg.Language, log),
		History:    history,
		Log:        log.With("component", "assistant", "classifier", cfg.Classifier),
	}

	if !cfg.interactive() {
		return runOnce(ctx, os.Stdout, assistant, cfg.Text)
	}

	style, _ := mood.ParseChartStyle(cfg.ChartStyle)
	var resetter app.Resetter
	if r, ok := history.(app.Resetter); ok {
		resetter = r
	}
	p := tea.NewProgram(app.New(ctx, assistant, resetter, style), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintln(os.Stderr, "tui:", err.Error())
		return 1
	}
	return 0
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "Path to the mood log CSV (timestamp,mood)")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "History backend: csv|sqlite")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path when -store=sqlite")
	fs.StringVar(&cfg.Classifier, "classifier", cfg.Classifier, "Sentiment technique: polarity (local lexicon) | label (OpenAI star rating)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model for -classifier=label (uses OPENAI_API_KEY)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.StringVar(&cfg.VerseBaseURL, "verse-base-url", cfg.VerseBaseURL, "Verse API base URL; requests go to {base}/{chapter}:{verse}/{lang}")
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "Verse edition/language code")
	fs.StringVar(&cfg.ChartStyle, "chart-style", cfg.ChartStyle, "History chart style: line|scatter")
	fs.StringVar(&cfg.Text, "text", "", "Analyze this text once and print the result instead of starting the interactive shell")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Structured log output (default stderr; mood-assistant.log in interactive mode)")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "Optional .env file to load before reading OPENAI_API_KEY")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/mood-assistant")
		fmt.Fprintln(fs.Output(), `  go run ./cmd/mood-assistant -classifier label -text "I feel great today"`)
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "text" {
			cfg.OneShot = true
		}
	})
	cfg.Classifier = strings.ToLower(strings.TrimSpace(cfg.Classifier))
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.LogPath != "" {
		cfg.LogPath = filepath.Clean(cfg.LogPath)
	}
	if cfg.DBPath != "" {
		cfg.DBPath = filepath.Clean(cfg.DBPath)
	}
	return cfg, nil
}

// loadEnvFile loads variables from path without overriding ones already set. A missing file is fine.
func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func buildClassifier(cfg Config) (mood.Classifier, error) {
	if cfg.Classifier == classifierPolarity {
		return mood.PolarityClassifier{Scorer: mood.LexiconScorer{}}, nil
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY (or pass -api-key) for -classifier=label")
	}
	// Every external call is attempted once.
	client := openai.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0))
	return mood.LabelClassifier{Scorer: provider.StarRater{Client: &client, Model: cfg.Model}}, nil
}

func openHistory(cfg Config) (mood.History, func(), error) {
	if cfg.Store == storeSQLite {
		st, err := sqlitelog.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open history: %w", err)
		}
		return st, func() { _ = st.Close() }, nil
	}
	return mood.NewCSVLog(cfg.LogPath), func() {}, nil
}

// runOnce analyzes text and prints the result. It returns the process exit code.
func runOnce(ctx context.Context, w io.Writer, a *mood.Assistant, text string) int {
	res, ok, err := a.Analyze(ctx, text)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err.Error())
		return 1
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "nothing to analyze")
		return 0
	}
	printAnalysis(w, res)
	return 0
}

func printAnalysis(w io.Writer, res mood.Analysis) {
	cls := res.Classification
	switch {
	case cls.Polarity != nil:
		fmt.Fprintf(w, "💡 الشعور: %s | درجة الإيجابية: %.2f\n", cls.Category.Label(), *cls.Polarity)
	case cls.Label != "":
		fmt.Fprintf(w, "💡 الشعور: %s | التقييم: %s (%.0f%%)\n", cls.Category.Label(), cls.Label, cls.Confidence*100)
	}
	fmt.Fprintf(w, "🌈 تم تصنيف شعورك على أنه: %s\n", cls.Category.Label())
	fmt.Fprintf(w, "📖 قال تعالى:\n> %s\n", res.Verse)
	fmt.Fprintln(w, "🎯 اقتراحات لأنشطتك اليوم:")
	for _, act := range res.Activities {
		fmt.Fprintf(w, "✅ %s\n", act)
	}
	fmt.Fprintf(w, "logged_at=%s mood=%s\n", mood.FormatTimestamp(res.Entry.Timestamp), res.Entry.Category.Label())
}
