package roast

import (
	"fmt"
	"strconv"
	"strings"
)

// Font weights applied by the bold toggle.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// Default caption style, matching the initial state of the style controls.
const (
	DefaultFontSize = 28
	DefaultColor    = "#ffffff"
)

// Style holds the visual attributes of a caption.
type Style struct {
	// FontSize is the font size in pixels at a device pixel ratio of 1.
	FontSize int

	// Color is a lower-case "#rrggbb" hex string.
	Color string

	Bold   bool
	Italic bool
}

// DefaultStyle returns the style used before any control is touched.
func DefaultStyle() Style {
	return Style{FontSize: DefaultFontSize, Color: DefaultColor}
}

// Weight returns the numeric font weight: 700 when bold, 400 otherwise.
func (s Style) Weight() int {
	if s.Bold {
		return WeightBold
	}
	return WeightNormal
}

// FontStyle returns "italic" or "normal".
func (s Style) FontStyle() string {
	if s.Italic {
		return "italic"
	}
	return "normal"
}

// Validate checks that the style can be rendered.
func (s Style) Validate() error {
	if s.FontSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidFontSize, s.FontSize)
	}
	if _, err := NormalizeColor(s.Color); err != nil {
		return err
	}
	return nil
}

// StyleOption changes a single style attribute.
//
// Example:
//
//	sel.Apply(roast.WithFontSize(40), roast.WithBold(true))
type StyleOption func(*Style)

// WithFontSize sets the font size in pixels.
func WithFontSize(px int) StyleOption {
	return func(s *Style) {
		s.FontSize = px
	}
}

// WithColor sets the caption color. The value should already be normalized
// with NormalizeColor.
func WithColor(hex string) StyleOption {
	return func(s *Style) {
		s.Color = hex
	}
}

// WithBold sets the bold flag.
func WithBold(bold bool) StyleOption {
	return func(s *Style) {
		s.Bold = bold
	}
}

// WithItalic sets the italic flag.
func WithItalic(italic bool) StyleOption {
	return func(s *Style) {
		s.Italic = italic
	}
}

// NormalizeColor validates a "#rgb" or "#rrggbb" color (the leading '#' is
// optional) and returns it as lower-case "#rrggbb".
func NormalizeColor(hex string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return "#" + strings.ToLower(h), nil
}
