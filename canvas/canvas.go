// Package canvas rasterizes editor scenes with github.com/gogpu/gg.
//
// Rasterizer implements both roast.Rasterizer and roast.Measurer, so the
// boxes used for hit testing and dragging come from the same faces that
// draw the export.
//
//	rz, err := canvas.New()
//	if err != nil {
//	    return err
//	}
//	defer rz.Close()
//
//	ed, err := roast.New(cat, roast.WithRasterizer(rz))
package canvas

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/climateroast/roast"
	"github.com/go-text/typesetting/language"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Selection outline: 2px dashed white at 12% opacity.
const (
	outlineWidth = 2
	outlineDash  = 6
	outlineGap   = 4
	outlineAlpha = 0.12
)

// Rasterizer draws scenes with gg's software renderer.
type Rasterizer struct {
	fonts     *Fonts
	ownFonts  bool
	shaper    text.Shaper
	interp    gg.InterpolationMode
	faces     *text.Cache[faceKey, text.Face]
	outlines  *text.OutlineExtractor
	outlineOn bool
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithFonts draws captions with f instead of the Go fonts. The caller keeps
// ownership of f.
func WithFonts(f *Fonts) Option {
	return func(r *Rasterizer) {
		r.fonts = f
	}
}

// WithInterpolation sets how the background is resampled.
// The default is bicubic.
func WithInterpolation(mode gg.InterpolationMode) Option {
	return func(r *Rasterizer) {
		r.interp = mode
	}
}

// WithShaper sets the shaper used for captions in complex scripts. Those
// captions are drawn from the shaped glyph outlines rather than gg's
// builtin text drawer. The default is gg's HarfBuzz-based
// text.GoTextShaper.
func WithShaper(s text.Shaper) Option {
	return func(r *Rasterizer) {
		r.shaper = s
	}
}

// WithoutOutline never draws the selection outline, even for highlighted
// scenes.
func WithoutOutline() Option {
	return func(r *Rasterizer) {
		r.outlineOn = false
	}
}

// New creates a rasterizer.
func New(opts ...Option) (*Rasterizer, error) {
	r := &Rasterizer{
		interp:    gg.InterpBicubic,
		faces:     text.NewCache[faceKey, text.Face](faceCacheLimit),
		outlines:  text.NewOutlineExtractor(),
		outlineOn: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fonts == nil {
		f, err := GoFonts()
		if err != nil {
			return nil, err
		}
		r.fonts = f
		r.ownFonts = true
	}
	if r.shaper == nil {
		r.shaper = text.NewGoTextShaper()
	}
	return r, nil
}

// Close releases the fonts the rasterizer loaded itself.
func (r *Rasterizer) Close() error {
	r.faces.Clear()
	if r.ownFonts {
		return r.fonts.Close()
	}
	return nil
}

// face returns the face for style at the given scale.
func (r *Rasterizer) face(s roast.Style, scale float64) text.Face {
	key := faceKey{bold: s.Bold, italic: s.Italic, size: float64(s.FontSize) * scale}
	return r.faces.GetOrCreate(key, func() text.Face {
		return r.fonts.Source(s).Face(key.size)
	})
}

// Measure returns the size of the caption text at scale 1.
func (r *Rasterizer) Measure(s string, style roast.Style) roast.Size {
	w, h := r.measure(s, r.face(style, 1))
	return roast.Size{W: w, H: h}
}

// measure returns the advance and line height of s. Complex scripts are
// measured from their shaped glyphs.
func (r *Rasterizer) measure(s string, face text.Face) (w, h float64) {
	w, h = text.Measure(s, face)
	if needsShaping(s) {
		w = advance(r.shaper.Shape(s, face))
	}
	return w, h
}

// Rasterize draws sc at opts.Scale.
//
// A cross-origin background fails with roast.ErrTainted unless
// opts.AllowTaint is set. A background that has not loaded is skipped.
func (r *Rasterizer) Rasterize(ctx context.Context, sc roast.Scene, opts roast.RasterOptions) (image.Image, error) {
	if bg := sc.Background; bg != nil && bg.Tainted && !opts.AllowTaint {
		return nil, fmt.Errorf("%w: %s", roast.ErrTainted, bg.Image.URL)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(sc.Size.W * scale))
	h := int(math.Round(sc.Size.H * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas: empty scene %gx%g", sc.Size.W, sc.Size.H)
	}

	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()
	if !opts.Transparent {
		dc.ClearWithColor(gg.Black)
	}

	if bg := sc.Background; bg != nil && bg.Loaded && bg.Pixels != nil {
		dc.DrawImageEx(gg.ImageBufFromImage(bg.Pixels), gg.DrawImageOptions{
			DstWidth:      float64(w),
			DstHeight:     float64(h),
			Interpolation: r.interp,
			Opacity:       1,
			BlendMode:     gg.BlendNormal,
		})
	}

	for _, l := range sc.Layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.drawCaption(dc, l, float64(w), float64(h), scale, sc.Highlight); err != nil {
			return nil, err
		}
	}

	roast.Logger().Debug("canvas: rasterized scene",
		"w", w, "h", h, "layers", len(sc.Layers), "scale", scale)
	return dc.Image(), nil
}

func (r *Rasterizer) drawCaption(dc *gg.Context, l roast.LayerSnapshot, w, h, scale float64, highlight bool) error {
	face := r.face(l.Style, scale)
	cx := l.Position.X / 100 * w
	cy := l.Position.Y / 100 * h

	tw, th := r.measure(l.Text, face)

	dc.SetFont(face)
	dc.SetColor(gg.Hex(l.Style.Color).Color())
	if needsShaping(l.Text) {
		if err := r.drawShaped(dc, l.Text, face, cx-tw/2, cy+th/2); err != nil {
			return err
		}
	} else {
		dc.DrawStringAnchored(l.Text, cx, cy, 0.5, 0.5)
	}

	if !highlight || !l.Selected || !r.outlineOn {
		return nil
	}
	pad := roast.CaptionPadding * scale
	bw, bh := tw+2*pad, th+2*pad

	dc.SetColor(gg.RGBA2(1, 1, 1, outlineAlpha).Color())
	dc.SetLineWidth(outlineWidth * scale)
	dc.SetDash(outlineDash*scale, outlineGap*scale)
	dc.DrawRectangle(cx-bw/2, cy-bh/2, bw, bh)
	err := dc.Stroke()
	dc.ClearDash()
	return err
}

// drawShaped fills the outlines of the shaped glyphs of s with the current
// color. (x, y) is the start of the baseline.
func (r *Rasterizer) drawShaped(dc *gg.Context, s string, face text.Face, x, y float64) error {
	parsed := face.Source().Parsed()
	dc.ClearPath()
	drawn := 0
	for _, g := range r.shaper.Shape(s, face) {
		o, err := r.outlines.ExtractOutline(parsed, g.GID, face.Size())
		if err != nil || o == nil || o.IsEmpty() {
			continue
		}
		appendOutline(dc, o, x+g.X, y+g.Y)
		drawn++
	}
	if drawn == 0 {
		return nil
	}
	return dc.Fill()
}

// appendOutline adds a glyph outline at (x, y) to the current path.
// Outline coordinates already grow downward, like the canvas.
func appendOutline(dc *gg.Context, o *text.GlyphOutline, x, y float64) {
	pt := func(p text.OutlinePoint) (float64, float64) {
		return x + float64(p.X), y + float64(p.Y)
	}
	for i, seg := range o.Segments {
		switch seg.Op {
		case text.OutlineOpMoveTo:
			if i > 0 {
				dc.ClosePath()
			}
			dc.MoveTo(pt(seg.Points[0]))
		case text.OutlineOpLineTo:
			dc.LineTo(pt(seg.Points[0]))
		case text.OutlineOpQuadTo:
			cx, cy := pt(seg.Points[0])
			px, py := pt(seg.Points[1])
			dc.QuadraticTo(cx, cy, px, py)
		case text.OutlineOpCubicTo:
			c1x, c1y := pt(seg.Points[0])
			c2x, c2y := pt(seg.Points[1])
			px, py := pt(seg.Points[2])
			dc.CubicTo(c1x, c1y, c2x, c2y, px, py)
		}
	}
	dc.ClosePath()
}

// advance is the total horizontal advance of shaped glyphs.
func advance(glyphs []text.ShapedGlyph) float64 {
	var w float64
	for _, g := range glyphs {
		w += g.XAdvance
	}
	return w
}

// needsShaping reports whether s contains a script the builtin drawer
// cannot lay out correctly.
func needsShaping(s string) bool {
	for _, r := range s {
		switch language.LookupScript(r) {
		case language.Latin, language.Common, language.Inherited:
		default:
			return true
		}
	}
	return false
}
