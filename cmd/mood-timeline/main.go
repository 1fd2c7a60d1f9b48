package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theimaginaryfoundation/mood-assistant/mood"
	"github.com/theimaginaryfoundation/mood-assistant/mood/sqlitelog"
)

// noHistoryMessage is printed instead of a chart when nothing has been logged yet.
const noHistoryMessage = "لا توجد بيانات محفوظة حتى الآن."

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "Path to the mood log CSV (timestamp,mood)")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "History backend: csv|sqlite")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path when -store=sqlite")
	fs.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "PNG output path")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format: png|text")
	fs.StringVar(&cfg.Style, "style", cfg.Style, "Chart style: line|scatter")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Chart width (pixels for png, columns for text)")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "PNG height in pixels")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "PNG chart title")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/mood-timeline -out mood.png")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/mood-timeline -format text -style scatter")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.LogPath != "" {
		cfg.LogPath = filepath.Clean(cfg.LogPath)
	}
	if cfg.DBPath != "" {
		cfg.DBPath = filepath.Clean(cfg.DBPath)
	}
	if cfg.OutputPath != "" {
		cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	}
	return cfg, nil
}

func readHistory(cfg Config) ([]mood.Entry, error) {
	if cfg.Store == storeSQLite {
		st, err := sqlitelog.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		defer st.Close()
		return st.ReadAll()
	}
	return mood.NewCSVLog(cfg.LogPath).ReadAll()
}

func run(cfg Config, w io.Writer) error {
	entries, err := readHistory(cfg)
	if err != nil && !errors.Is(err, mood.ErrNotFound) {
		return err
	}
	// A header-only log reads as empty; treat it like a missing one.
	if len(entries) == 0 {
		fmt.Fprintln(w, noHistoryMessage)
		return nil
	}

	style, err := mood.ParseChartStyle(cfg.Style)
	if err != nil {
		return err
	}
	tl := mood.BuildTimeline(entries)

	if cfg.Format == formatText {
		_, err := io.WriteString(w, mood.TextRenderer{Width: cfg.Width, Style: style}.Render(tl))
		return err
	}

	r := mood.PNGRenderer{Style: style, Width: cfg.Width, Height: cfg.Height, Title: cfg.Title}
	if err := r.WriteFile(cfg.OutputPath, tl); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Fprintf(w, "wrote %s (%d entries)\n", cfg.OutputPath, len(entries))
	return nil
}
