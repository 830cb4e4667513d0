package roast

import "slices"

// Overlay is the container of caption layers drawn over the displayed image.
//
// Layers are kept in creation order, which is also the z-order: the last
// layer is drawn on top and wins hit tests. The container rect is never set
// by callers directly; the Editor derives it from the displayed image box on
// every resize and every image swap.
type Overlay struct {
	layers    []*Layer
	rect      Rect
	highlight bool
	measure   Measurer
}

// NewOverlay creates an empty overlay. A nil measurer selects the built-in
// estimator.
func NewOverlay(m Measurer) *Overlay {
	if m == nil {
		m = estimateMeasurer{}
	}
	return &Overlay{highlight: true, measure: m}
}

// Add appends l on top of the existing layers.
func (o *Overlay) Add(l *Layer) {
	o.layers = append(o.layers, l)
}

// Remove deletes l from the overlay and reports whether it was present.
func (o *Overlay) Remove(l *Layer) bool {
	i := slices.Index(o.layers, l)
	if i < 0 {
		return false
	}
	o.layers = slices.Delete(o.layers, i, i+1)
	return true
}

// Clear removes every layer.
func (o *Overlay) Clear() {
	clear(o.layers)
	o.layers = o.layers[:0]
}

// Layers returns the layers bottom to top. The slice is a copy.
func (o *Overlay) Layers() []*Layer {
	return slices.Clone(o.layers)
}

// Len returns the number of layers.
func (o *Overlay) Len() int { return len(o.layers) }

// Rect returns the current container rect in client coordinates.
func (o *Overlay) Rect() Rect { return o.rect }

// SetRect re-lays out the container. Layer positions are percentages, so no
// layer is touched; pixel positions follow from the new rect.
func (o *Overlay) SetRect(r Rect) {
	o.rect = r
	Logger().Debug("roast: overlay layout",
		"x", r.Min.X, "y", r.Min.Y, "w", r.Size.W, "h", r.Size.H)
}

// PixelPosition returns the client position of l's center.
func (o *Overlay) PixelPosition(l *Layer) Point {
	return ToPixel(l.Position, o.rect)
}

// LayerSize returns the box size of l including padding.
func (o *Overlay) LayerSize(l *Layer) Size {
	return boxSize(o.measure, l)
}

// LayerRect returns the client-space box of l.
func (o *Overlay) LayerRect(l *Layer) Rect {
	return CenteredRect(l.Position, o.rect, o.LayerSize(l))
}

// HitTest returns the topmost layer whose box contains p, or nil.
func (o *Overlay) HitTest(p Point) *Layer {
	for i := len(o.layers) - 1; i >= 0; i-- {
		if o.LayerRect(o.layers[i]).Contains(p) {
			return o.layers[i]
		}
	}
	return nil
}

// SetHighlight turns the selection outline on or off for every layer.
func (o *Overlay) SetHighlight(on bool) { o.highlight = on }

// Highlighted reports whether the selection outline is shown.
func (o *Overlay) Highlighted() bool { return o.highlight }

// Snapshot captures the current visual state for rasterization.
func (o *Overlay) Snapshot(bg *Background) Scene {
	sc := Scene{
		Size:       o.rect.Size,
		Background: bg,
		Highlight:  o.highlight,
		Layers:     make([]LayerSnapshot, len(o.layers)),
	}
	for i, l := range o.layers {
		sc.Layers[i] = LayerSnapshot{
			Text:     l.Text,
			Position: l.Position,
			Style:    l.Style,
			Selected: l.selected,
		}
	}
	return sc
}
