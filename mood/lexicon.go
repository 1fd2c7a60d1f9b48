package mood

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/jonreiter/govader"
)

// LexiconScorer scores polarity with VADER (github.com/jonreiter/govader), whose compound
// score already lies in [-1, 1] and handles English negation, boosters, punctuation and
// emoji. VADER has no Arabic vocabulary, so a small overlay of Arabic mood words is scored
// alongside it: each overlay hit counts as one value, flipped and halved by a preceding
// negation, and the non-zero VADER compound counts as one more. The result is their mean.
// Text with no sentiment-bearing words scores 0.
type LexiconScorer struct {
	// Extra entries override or extend the overlay. Keys must be lower case.
	Extra map[string]float64
}

var (
	vaderOnce     sync.Once
	vaderAnalyzer *govader.SentimentIntensityAnalyzer
)

func analyzer() *govader.SentimentIntensityAnalyzer {
	vaderOnce.Do(func() {
		vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()
	})
	return vaderAnalyzer
}

// negationWindow is how many tokens an overlay negation reaches forward.
const negationWindow = 2

var overlayLexicon = map[string]float64{
	"سعيد":   0.8,
	"سعيدة":  0.8,
	"فرح":    0.8,
	"فرحان":  0.8,
	"مبسوط":  0.7,
	"مبسوطة": 0.7,
	"ممتاز":  1.0,
	"رائع":   0.9,
	"جميل":   0.7,
	"جيد":    0.6,
	"بخير":   0.5,
	"مرتاح":  0.5,
	"متفائل": 0.6,
	"الحمد":  0.4,
	"حزين":   -0.7,
	"حزينة":  -0.7,
	"زعلان":  -0.6,
	"تعبان":  -0.5,
	"تعبانة": -0.5,
	"متعب":   -0.5,
	"قلق":    -0.5,
	"قلقة":   -0.5,
	"خائف":   -0.6,
	"وحيد":   -0.6,
	"غاضب":   -0.6,
	"سيء":    -0.7,
	"سيئ":    -0.7,
	"مكتئب":  -0.8,
	"متضايق": -0.6,
}

var overlayNegations = map[string]struct{}{
	"لا":  {},
	"لست": {},
	"ما":  {},
	"مو":  {},
	"مش":  {},
	"لم":  {},
	"ليس": {},
	"غير": {},
}

// Polarity implements PolarityScorer. It never fails.
func (s LexiconScorer) Polarity(_ context.Context, text string) (float64, error) {
	return s.score(text), nil
}

func (s LexiconScorer) lookup(tok string) (float64, bool) {
	if v, ok := s.Extra[tok]; ok {
		return v, true
	}
	v, ok := overlayLexicon[tok]
	return v, ok
}

func (s LexiconScorer) score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	sum, n := s.overlay(text)
	if c := analyzer().PolarityScores(text).Compound; c != 0 {
		sum += c
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp(sum/float64(n), -1, 1)
}

// overlay sums the overlay values found in text and reports how many were found.
func (s LexiconScorer) overlay(text string) (float64, int) {
	var sum float64
	var n int

	negate := false
	since := 0
	for _, tok := range tokenize(text) {
		if _, ok := overlayNegations[tok]; ok {
			negate = !negate
			since = 0
			continue
		}
		v, ok := s.lookup(tok)
		if !ok {
			since++
			if since >= negationWindow {
				negate = false
			}
			continue
		}
		if negate {
			v *= -0.5
		}
		sum += clamp(v, -1, 1)
		n++
		negate = false
		since = 0
	}
	return sum, n
}

// tokenize lower-cases text and splits it on anything that is not a letter, digit or apostrophe.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '\'')
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
