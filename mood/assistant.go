package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/mood-assistant/mood/logging"
)

// Analysis is everything shown for one submission.
type Analysis struct {
	Text           string
	Classification Classification
	Verse          string
	Activities     []string
	Entry          Entry
}

// Assistant runs one classify → log → verse → activities cycle per submission.
type Assistant struct {
	Classifier Classifier
	Verses     VerseFetcher
	History    History
	// Now defaults to time.Now.
	Now func() time.Time
	Log *logging.Logger
}

// Analyze classifies text and records the result. Blank text is a no-op and returns ok=false.
// Classifier and log failures are returned; verse failures never are.
func (a *Assistant) Analyze(ctx context.Context, text string) (Analysis, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Analysis{}, false, nil
	}
	if a.Classifier == nil {
		return Analysis{}, false, errors.New("assistant: classifier is nil")
	}
	if a.History == nil {
		return Analysis{}, false, errors.New("assistant: history is nil")
	}

	cls, err := a.Classifier.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, ErrEmptyText) {
			return Analysis{}, false, nil
		}
		a.Log.Error("classification failed", "error", err.Error())
		return Analysis{}, false, fmt.Errorf("classify: %w", err)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	entry := NewEntry(now(), cls.Category)
	if err := a.History.Append(entry); err != nil {
		a.Log.Error("append to mood log failed", "error", err.Error())
		return Analysis{}, false, fmt.Errorf("append mood log: %w", err)
	}

	verse := VersePlaceholder
	if a.Verses != nil {
		verse = a.Verses.FetchVerse(ctx, cls.Category)
	}

	kv := []interface{}{"category", cls.Category.String()}
	if cls.Polarity != nil {
		kv = append(kv, "polarity", *cls.Polarity)
	}
	if cls.Label != "" {
		kv = append(kv, "label", cls.Label, "confidence", cls.Confidence)
	}
	a.Log.Info("mood classified", kv...)

	return Analysis{
		Text:           text,
		Classification: cls,
		Verse:          verse,
		Activities:     Suggest(cls.Category),
		Entry:          entry,
	}, true, nil
}

// Timeline reads the full history. An error matching ErrNotFound means nothing was recorded yet.
func (a *Assistant) Timeline() ([]Entry, error) {
	if a.History == nil {
		return nil, errors.New("assistant: history is nil")
	}
	return a.History.ReadAll()
}
