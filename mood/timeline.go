package mood

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Point is one timeline sample: time on x, a category row on y.
type Point struct {
	At       time.Time
	Category Category
	// Row is the category's index in DisplayOrder.
	Row int
}

// Timeline is the chart-ready form of the mood history, in file order.
type Timeline struct {
	Points []Point
	Start  time.Time
	End    time.Time
}

func rowOf(c Category) int {
	for i, d := range DisplayOrder {
		if d == c {
			return i
		}
	}
	return -1
}

// BuildTimeline converts log entries into chart points. Start and End span the earliest and
// latest timestamps, which need not be the first and last entries if the clock moved back.
func BuildTimeline(entries []Entry) Timeline {
	tl := Timeline{Points: make([]Point, 0, len(entries))}
	for i, e := range entries {
		tl.Points = append(tl.Points, Point{At: e.Timestamp, Category: e.Category, Row: rowOf(e.Category)})
		if i == 0 || e.Timestamp.Before(tl.Start) {
			tl.Start = e.Timestamp
		}
		if i == 0 || e.Timestamp.After(tl.End) {
			tl.End = e.Timestamp
		}
	}
	return tl
}

// Counts returns how many points fall into each category.
func (t Timeline) Counts() map[Category]int {
	out := make(map[Category]int, len(DisplayOrder))
	for _, p := range t.Points {
		out[p.Category]++
	}
	return out
}

// ChartStyle selects the visual encoding of a timeline.
type ChartStyle string

const (
	StyleLine    ChartStyle = "line"
	StyleScatter ChartStyle = "scatter"
)

func ParseChartStyle(s string) (ChartStyle, error) {
	switch ChartStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleLine:
		return StyleLine, nil
	case StyleScatter:
		return StyleScatter, nil
	default:
		return "", fmt.Errorf("unknown chart style %q (want line|scatter)", s)
	}
}

// TextRenderer draws a timeline as a small terminal chart: one row per category in display
// order (positive on top), one column per entry. When there are more entries than columns only
// the most recent ones are shown.
type TextRenderer struct {
	// Width is the number of point columns. Zero means 40.
	Width int
	Style ChartStyle
}

const textRowLabelWidth = 9

func (r TextRenderer) Render(tl Timeline) string {
	width := r.Width
	if width <= 0 {
		width = 40
	}
	pts := tl.Points
	if len(pts) > width {
		pts = pts[len(pts)-width:]
	}

	var b strings.Builder
	for row := len(DisplayOrder) - 1; row >= 0; row-- {
		cat := DisplayOrder[row]
		label := cat.String()
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", textRowLabelWidth-utf8.RuneCountInString(label)))
		b.WriteString("│")
		for i, p := range pts {
			b.WriteString(r.cell(pts, i, p, row))
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", textRowLabelWidth))
	b.WriteString("└")
	b.WriteString(strings.Repeat("─", len(pts)))
	b.WriteString("\n")
	if len(pts) > 0 {
		fmt.Fprintf(&b, "%s%s → %s (%d shown of %d)\n",
			strings.Repeat(" ", textRowLabelWidth+1),
			FormatTimestamp(pts[0].At), FormatTimestamp(pts[len(pts)-1].At),
			len(pts), len(tl.Points))
	}
	return b.String()
}

func (r TextRenderer) cell(pts []Point, i int, p Point, row int) string {
	if p.Row == row {
		return "●"
	}
	if r.Style == StyleScatter || i == 0 {
		return " "
	}
	// Line style: draw a vertical connector between the previous and current rows.
	prev := pts[i-1].Row
	lo, hi := prev, p.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	if row > lo && row < hi {
		return "│"
	}
	return " "
}
