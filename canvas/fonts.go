package canvas

import (
	"errors"
	"fmt"

	"github.com/climateroast/roast"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts is a family of four font sources, one per bold/italic combination.
type Fonts struct {
	Regular    *text.FontSource
	Bold       *text.FontSource
	Italic     *text.FontSource
	BoldItalic *text.FontSource
}

// faceKey identifies a cached face.
type faceKey struct {
	bold, italic bool
	size         float64
}

// faceCacheLimit bounds the number of cached faces.
const faceCacheLimit = 64

// GoFonts parses the Go font family bundled with golang.org/x/image.
func GoFonts() (*Fonts, error) {
	var f Fonts
	for _, src := range []struct {
		dst  **text.FontSource
		data []byte
		name string
	}{
		{&f.Regular, goregular.TTF, "regular"},
		{&f.Bold, gobold.TTF, "bold"},
		{&f.Italic, goitalic.TTF, "italic"},
		{&f.BoldItalic, gobolditalic.TTF, "bold italic"},
	} {
		s, err := text.NewFontSource(src.data)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("canvas: parsing go %s font: %w", src.name, err)
		}
		*src.dst = s
	}
	return &f, nil
}

// LoadFonts parses a font family from files. Empty paths fall back to the
// regular font.
func LoadFonts(regular, bold, italic, boldItalic string) (*Fonts, error) {
	if regular == "" {
		return nil, errors.New("canvas: regular font path is required")
	}
	var f Fonts
	var err error
	if f.Regular, err = text.NewFontSourceFromFile(regular); err != nil {
		return nil, fmt.Errorf("canvas: loading %s: %w", regular, err)
	}
	for _, src := range []struct {
		dst  **text.FontSource
		path string
	}{
		{&f.Bold, bold},
		{&f.Italic, italic},
		{&f.BoldItalic, boldItalic},
	} {
		if src.path == "" {
			*src.dst = f.Regular
			continue
		}
		s, err := text.NewFontSourceFromFile(src.path)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("canvas: loading %s: %w", src.path, err)
		}
		*src.dst = s
	}
	return &f, nil
}

// Source returns the font source for a caption style.
func (f *Fonts) Source(s roast.Style) *text.FontSource {
	switch {
	case s.Bold && s.Italic:
		return f.BoldItalic
	case s.Bold:
		return f.Bold
	case s.Italic:
		return f.Italic
	}
	return f.Regular
}

// Close releases every distinct font source.
func (f *Fonts) Close() error {
	seen := make(map[*text.FontSource]bool, 4)
	var errs []error
	for _, s := range []*text.FontSource{f.Regular, f.Bold, f.Italic, f.BoldItalic} {
		if s == nil || seen[s] {
			continue
		}
		seen[s] = true
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
