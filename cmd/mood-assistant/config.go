package main

import (
	"errors"
	"fmt"

	"github.com/theimaginaryfoundation/mood-assistant/mood"
	"github.com/theimaginaryfoundation/mood-assistant/mood/provider"
)

type Config struct {
	LogPath string
	Store   string
	DBPath  string

	Classifier string
	Model      string
	APIKey     string

	VerseBaseURL string
	Language     string

	ChartStyle string

	// Text is analyzed once when -text is given, even if it is blank.
	Text    string
	OneShot bool

	LogLevel string
	LogFile  string
	EnvFile  string
}

const (
	classifierPolarity = "polarity"
	classifierLabel    = "label"

	storeCSV    = "csv"
	storeSQLite = "sqlite"
)

func (c Config) Validate() error {
	switch c.Classifier {
	case classifierPolarity, classifierLabel:
	default:
		return fmt.Errorf("classifier must be %s|%s, got %q", classifierPolarity, classifierLabel, c.Classifier)
	}
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
	if c.Classifier == classifierLabel && c.Model == "" {
		return errors.New("missing -model")
	}
	if _, err := mood.ParseChartStyle(c.ChartStyle); err != nil {
		return err
	}
	return nil
}

func (c Config) interactive() bool {
	return !c.OneShot
}

func defaultConfig() Config {
	return Config{
		LogPath:      "mood_log.csv",
		Store:        storeCSV,
		DBPath:       "mood_log.sqlite",
		Classifier:   classifierPolarity,
		Model:        provider.DefaultModel,
		VerseBaseURL: mood.DefaultVerseBaseURL,
		Language:     mood.DefaultVerseLanguage,
		ChartStyle:   string(mood.StyleLine),
		LogLevel:     "info",
		EnvFile:      ".env",
	}
}
