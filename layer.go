package roast

import (
	"github.com/rivo/uniseg"
)

// Layer is a single positioned, styled text caption.
//
// Position is the layer's center in percent of the overlay container, never
// in pixels, so the caption stays anchored when the container is resized.
type Layer struct {
	id       int
	Text     string
	Position Percent
	Style    Style
	selected bool
}

// ID returns the identifier assigned when the layer was created.
// IDs are unique within an Editor and never reused.
func (l *Layer) ID() int { return l.id }

// Selected reports whether the layer is the current selection.
func (l *Layer) Selected() bool { return l.selected }

// Measurer reports the rendered box of a caption.
type Measurer interface {
	Measure(text string, style Style) Size
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string, style Style) Size

// Measure calls f(text, style).
func (f MeasureFunc) Measure(text string, style Style) Size { return f(text, style) }

// estimateMeasurer approximates caption boxes without a font: every grapheme
// cluster is 0.6em wide and a line is 1.2em tall.
type estimateMeasurer struct{}

func (estimateMeasurer) Measure(text string, style Style) Size {
	em := float64(style.FontSize)
	n := uniseg.GraphemeClusterCount(text)
	return Size{W: 0.6 * em * float64(n), H: 1.2 * em}
}

// CaptionPadding is the space in pixels between a caption's text and the
// edge of its layer box.
const CaptionPadding = 6

// boxSize adds the caption padding to a measured text size.
func boxSize(m Measurer, l *Layer) Size {
	s := m.Measure(l.Text, l.Style)
	return Size{W: s.W + 2*CaptionPadding, H: s.H + 2*CaptionPadding}
}
