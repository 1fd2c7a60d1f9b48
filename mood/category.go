package mood

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the three closed mood buckets. It keys every downstream lookup:
// verse references, activity suggestions, the persisted log and the timeline rows.
type Category int

const (
	Negative Category = iota
	Neutral
	Positive
)

// Persisted labels. These are the values written to the mood column of the log.
const (
	LabelNegative = "سلبي"
	LabelNeutral  = "محايد"
	LabelPositive = "إيجابي"
)

var ErrUnknownCategory = errors.New("unknown mood category")

// DisplayOrder is the fixed order used for chart rows and legends.
var DisplayOrder = [...]Category{Negative, Neutral, Positive}

// Label returns the persisted (Arabic) label.
func (c Category) Label() string {
	switch c {
	case Negative:
		return LabelNegative
	case Neutral:
		return LabelNeutral
	case Positive:
		return LabelPositive
	default:
		return ""
	}
}

// String returns the English name, used in logs and chart axes.
func (c Category) String() string {
	switch c {
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

func (c Category) Valid() bool {
	return c >= Negative && c <= Positive
}

// ParseCategory accepts either the persisted label or the English name.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range DisplayOrder {
		if s == c.Label() || strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
