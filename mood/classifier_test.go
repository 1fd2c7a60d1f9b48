package mood

import (
	"context"
	"errors"
	"testing"
)

type fixedPolarity float64

func (f fixedPolarity) Polarity(context.Context, string) (float64, error) { return float64(f), nil }

type fixedLabel LabelScore

func (f fixedLabel) RateText(context.Context, string) (LabelScore, error) { return LabelScore(f), nil }

type failingScorer struct{ err error }

func (f failingScorer) Polarity(context.Context, string) (float64, error) { return 0, f.err }
func (f failingScorer) RateText(context.Context, string) (LabelScore, error) {
	return LabelScore{}, f.err
}

func TestMapPolarity_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  Category
	}{
		{0.2, Neutral},
		{-0.2, Neutral},
		{0, Neutral},
		{0.21, Positive},
		{-0.21, Negative},
		{1, Positive},
		{-1, Negative},
	}
	for _, tc := range cases {
		if got := MapPolarity(tc.score); got != tc.want {
			t.Fatalf("MapPolarity(%v)=%v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestMapLabel_ExactMatching(t *testing.T) {
	t.Parallel()

	cases := map[string]Category{
		"1 star":    Negative,
		"2 stars":   Negative,
		"3 stars":   Neutral,
		"4 stars":   Positive,
		"5 stars":   Positive,
		" 5 Stars ": Positive,
	}
	for label, want := range cases {
		got, err := MapLabel(label)
		if err != nil {
			t.Fatalf("MapLabel(%q): %v", label, err)
		}
		if got != want {
			t.Fatalf("MapLabel(%q)=%v, want %v", label, got, want)
		}
	}

	for _, bad := range []string{"13 stars", "2", "", "positive", "3 star"} {
		if _, err := MapLabel(bad); !errors.Is(err, ErrUnrecognizedLabel) {
			t.Fatalf("MapLabel(%q) err=%v, want ErrUnrecognizedLabel", bad, err)
		}
	}
}

func TestPolarityClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := PolarityClassifier{Scorer: fixedPolarity(0.6)}
	got, err := c.Classify(context.Background(), "I feel great today")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Category != Positive {
		t.Fatalf("Category=%v", got.Category)
	}
	if got.Polarity == nil || *got.Polarity != 0.6 {
		t.Fatalf("Polarity=%v", got.Polarity)
	}
	if got.Label != "" {
		t.Fatalf("Label=%q", got.Label)
	}
}

func TestLabelClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := LabelClassifier{Scorer: fixedLabel{Label: "2 stars", Confidence: 0.7}}
	got, err := c.Classify(context.Background(), "not a good day")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Category != Negative || got.Label != "2 stars" || got.Confidence != 0.7 {
		t.Fatalf("got=%+v", got)
	}
	if got.Polarity != nil {
		t.Fatalf("Polarity=%v", *got.Polarity)
	}

	c = LabelClassifier{Scorer: fixedLabel{Label: "13 stars"}}
	if _, err := c.Classify(context.Background(), "x"); !errors.Is(err, ErrUnrecognizedLabel) {
		t.Fatalf("err=%v", err)
	}
}

func TestClassify_EmptyTextSkipsScorer(t *testing.T) {
	t.Parallel()

	boom := errors.New("should not be called")
	for _, c := range []Classifier{
		PolarityClassifier{Scorer: failingScorer{err: boom}},
		LabelClassifier{Scorer: failingScorer{err: boom}},
	} {
		if _, err := c.Classify(context.Background(), "   "); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("err=%v, want ErrEmptyText", err)
		}
	}
}

func TestClassify_ScorerErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("offline")
	if _, err := (PolarityClassifier{Scorer: failingScorer{err: boom}}).Classify(context.Background(), "hi"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
	if _, err := (LabelClassifier{Scorer: failingScorer{err: boom}}).Classify(context.Background(), "hi"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestCategory_LabelsRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range DisplayOrder {
		got, err := ParseCategory(" " + c.Label() + " ")
		if err != nil || got != c {
			t.Fatalf("ParseCategory(%q)=%v,%v", c.Label(), got, err)
		}
		got, err = ParseCategory(c.String())
		if err != nil || got != c {
			t.Fatalf("ParseCategory(%q)=%v,%v", c.String(), got, err)
		}
	}
	if _, err := ParseCategory("happy"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err=%v", err)
	}
	if Positive.Label() != "إيجابي" {
		t.Fatalf("Positive.Label()=%q", Positive.Label())
	}
}

func TestSuggest_ReturnsCopy(t *testing.T) {
	t.Parallel()

	got := Suggest(Positive)
	want := []string{"💬 شارك طاقتك", "💪 مارس رياضة", "🧠 تعلم شيء جديد"}
	if len(got) != len(want) {
		t.Fatalf("len=%d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%q, want %q", i, got[i], want[i])
		}
	}
	got[0] = "mutated"
	if Suggest(Positive)[0] != want[0] {
		t.Fatalf("Suggest leaked internal slice")
	}
	for _, c := range DisplayOrder {
		if len(Suggest(c)) != 3 {
			t.Fatalf("Suggest(%v) len=%d", c, len(Suggest(c)))
		}
	}
}
