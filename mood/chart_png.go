package mood

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/theimaginaryfoundation/mood-assistant/mood/fileutils"
)

// Category colours, in DisplayOrder.
var categoryColors = map[Category]color.NRGBA{
	Negative: {R: 0xD6, G: 0x27, B: 0x28, A: 0xFF},
	Neutral:  {R: 0x7F, G: 0x7F, B: 0x7F, A: 0xFF},
	Positive: {R: 0x2C, G: 0xA0, B: 0x2C, A: 0xFF},
}

// PNGRenderer draws a timeline as a PNG image: time on the x axis, one horizontal band per
// category in DisplayOrder (negative at the bottom), points coloured by category.
type PNGRenderer struct {
	Style  ChartStyle
	Width  int
	Height int
	Title  string
}

const (
	pngMarginLeft   = 90.0
	pngMarginRight  = 30.0
	pngMarginTop    = 40.0
	pngMarginBottom = 50.0
	pngPointRadius  = 5.0
)

func (r PNGRenderer) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = 700
	}
	if h <= 0 {
		h = 200
	}
	return w, h
}

// Render returns the encoded PNG.
func (r PNGRenderer) Render(tl Timeline) ([]byte, error) {
	w, h := r.size()
	if float64(w) <= pngMarginLeft+pngMarginRight || float64(h) <= pngMarginTop+pngMarginBottom {
		return nil, fmt.Errorf("chart too small: %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotW := float64(w) - pngMarginLeft - pngMarginRight
	plotH := float64(h) - pngMarginTop - pngMarginBottom
	rowY := func(row int) float64 {
		step := plotH / float64(len(DisplayOrder))
		return pngMarginTop + plotH - step*(float64(row)+0.5)
	}
	span := tl.End.Sub(tl.Start).Seconds()
	pointX := func(p Point) float64 {
		if span <= 0 {
			return pngMarginLeft + plotW/2
		}
		return pngMarginLeft + plotW*p.At.Sub(tl.Start).Seconds()/span
	}

	title := r.Title
	if title == "" {
		title = "Mood over time"
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(title, float64(w)/2, pngMarginTop/2, 0.5, 0.5)

	// Grid and row labels.
	dc.SetLineWidth(1)
	for row, cat := range DisplayOrder {
		y := rowY(row)
		dc.SetRGB(0.9, 0.9, 0.9)
		dc.DrawLine(pngMarginLeft, y, pngMarginLeft+plotW, y)
		dc.Stroke()
		dc.SetColor(categoryColors[cat])
		dc.DrawStringAnchored(cat.String(), pngMarginLeft-10, y, 1, 0.5)
	}

	// Axes.
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawLine(pngMarginLeft, pngMarginTop, pngMarginLeft, pngMarginTop+plotH)
	dc.DrawLine(pngMarginLeft, pngMarginTop+plotH, pngMarginLeft+plotW, pngMarginTop+plotH)
	dc.Stroke()

	if len(tl.Points) > 0 {
		axisY := pngMarginTop + plotH + 18
		dc.DrawStringAnchored(FormatTimestamp(tl.Start), pngMarginLeft, axisY, 0, 0.5)
		if span > 0 {
			dc.DrawStringAnchored(FormatTimestamp(tl.End), pngMarginLeft+plotW, axisY, 1, 0.5)
		}
	}

	if r.Style != StyleScatter && len(tl.Points) > 1 {
		dc.SetRGB(0.4, 0.4, 0.4)
		dc.SetLineWidth(1.5)
		for i, p := range tl.Points {
			x, y := pointX(p), rowY(p.Row)
			if i == 0 {
				dc.MoveTo(x, y)
				continue
			}
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}

	for _, p := range tl.Points {
		if p.Row < 0 {
			continue
		}
		dc.SetColor(categoryColors[p.Category])
		dc.DrawCircle(pointX(p), rowY(p.Row), pngPointRadius)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the timeline and atomically writes it to path.
func (r PNGRenderer) WriteFile(path string, tl Timeline) error {
	b, err := r.Render(tl)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFileAtomicSameDir(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
