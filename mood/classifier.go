package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyText is returned when there is nothing to classify. Callers treat it as a no-op.
	ErrEmptyText = errors.New("empty text")
	// ErrUnrecognizedLabel is returned when a star-rating label is not one of the five known labels.
	ErrUnrecognizedLabel = errors.New("unrecognized sentiment label")
)

// Polarity thresholds. Comparisons are strict, so a score of exactly ±0.2 is neutral.
const (
	NegativeThreshold = -0.2
	PositiveThreshold = 0.2
)

// Classification is the evidence behind one category decision. Polarity is set by polarity-based
// classifiers; Label and Confidence by label-based ones.
type Classification struct {
	Category   Category
	Polarity   *float64
	Label      string
	Confidence float64
}

// Classifier maps free text to a mood category.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// PolarityScorer returns a continuous polarity score in [-1, 1].
type PolarityScorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// LabelScore is a discrete star-rating label with the classifier's confidence.
type LabelScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// LabelScorer returns a five-level star rating ("1 star" ... "5 stars").
type LabelScorer interface {
	RateText(ctx context.Context, text string) (LabelScore, error)
}

// MapPolarity applies the threshold rule to a polarity score.
func MapPolarity(score float64) Category {
	switch {
	case score < NegativeThreshold:
		return Negative
	case score > PositiveThreshold:
		return Positive
	default:
		return Neutral
	}
}

var starLabels = map[string]Category{
	"1 star":  Negative,
	"2 stars": Negative,
	"3 stars": Neutral,
	"4 stars": Positive,
	"5 stars": Positive,
}

// MapLabel maps a star-rating label to a category using exact matching.
func MapLabel(label string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	c, ok := starLabels[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedLabel, label)
	}
	return c, nil
}

// PolarityClassifier classifies text by thresholding a polarity score.
type PolarityClassifier struct {
	Scorer PolarityScorer
}

func (c PolarityClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	if strings.TrimSpace(text) == "" {
		return Classification{}, ErrEmptyText
	}
	if c.Scorer == nil {
		return Classification{}, errors.New("PolarityClassifier: scorer is nil")
	}
	score, err := c.Scorer.Polarity(ctx, text)
	if err != nil {
		return Classification{}, fmt.Errorf("polarity: %w", err)
	}
	return Classification{
		Category: MapPolarity(score),
		Polarity: &score,
	}, nil
}

// LabelClassifier classifies text from a star-rating label.
type LabelClassifier struct {
	Scorer LabelScorer
}

func (c LabelClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	if strings.TrimSpace(text) == "" {
		return Classification{}, ErrEmptyText
	}
	if c.Scorer == nil {
		return Classification{}, errors.New("LabelClassifier: scorer is nil")
	}
	score, err := c.Scorer.RateText(ctx, text)
	if err != nil {
		return Classification{}, fmt.Errorf("rate text: %w", err)
	}
	cat, err := MapLabel(score.Label)
	if err != nil {
		return Classification{}, err
	}
	return Classification{
		Category:   cat,
		Label:      strings.TrimSpace(score.Label),
		Confidence: score.Confidence,
	}, nil
}
