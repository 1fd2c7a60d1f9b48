package main

import (
	"errors"
	"fmt"

	"github.com/theimaginaryfoundation/mood-assistant/mood"
)

type Config struct {
	LogPath string
	Store   string
	DBPath  string

	// OutputPath is where the PNG is written. Ignored for -format=text.
	OutputPath string
	Format     string
	Style      string
	Width      int
	Height     int
	Title      string
}

const (
	storeCSV    = "csv"
	storeSQLite = "sqlite"

	formatPNG  = "png"
	formatText = "text"
)

func (c Config) Validate() error {
	switch c.Store {
	case storeCSV:
		if c.LogPath == "" {
			return errors.New("missing -log")
		}
	case storeSQLite:
		if c.DBPath == "" {
			return errors.New("missing -db")
		}
	default:
		return fmt.Errorf("store must be %s|%s, got %q", storeCSV, storeSQLite, c.Store)
	}
	switch c.Format {
	case formatPNG:
		if c.OutputPath == "" {
			return errors.New("missing -out")
		}
	case formatText:
	default:
		return fmt.Errorf("format must be %s|%s, got %q", formatPNG, formatText, c.Format)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("-width and -height must be > 0")
	}
	if _, err := mood.ParseChartStyle(c.Style); err != nil {
		return err
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		LogPath:    "mood_log.csv",
		Store:      storeCSV,
		DBPath:     "mood_log.sqlite",
		OutputPath: "mood_timeline.png",
		Format:     formatPNG,
		Style:      string(mood.StyleLine),
		Width:      700,
		Height:     200,
		Title:      "Mood timeline",
	}
}
