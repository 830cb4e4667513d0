package roast

import (
	"context"
	"fmt"
	"strings"

	"github.com/climateroast/roast/catalog"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Prompts shown through the Notifier.
const (
	emptyCaptionMessage = "Please type a caption to add."
	longCaptionMessage  = "That caption is too long to fit on the image."
	clearAllQuestion    = "Remove all captions?"
)

// Editor is the caption editor: a gallery of backgrounds, the overlay of
// caption layers, the selection and style controls, per-layer drag
// controllers and the export bridge.
//
// Each method is the handler of one user-visible control or input event.
// An Editor is not safe for concurrent use: call it only from the goroutine
// that runs its Loop.
type Editor struct {
	loop     *Loop
	window   Window
	overlay  *Overlay
	sel      Selection
	gallery  *Gallery
	exporter *Exporter
	notifier Notifier

	controls   Style
	drags      map[*Layer]*Drag
	active     *Drag
	viewport   Size
	maxCaption int
	nextID     int
}

// New creates an editor over the images of c.
func New(c *catalog.Catalog, opts ...Option) (*Editor, error) {
	if c == nil {
		return nil, fmt.Errorf("roast: nil catalog")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	style := o.style
	color, err := NormalizeColor(style.Color)
	if err != nil {
		return nil, err
	}
	style.Color = color
	if err := style.Validate(); err != nil {
		return nil, err
	}

	measurer := o.measurer
	if measurer == nil {
		if m, ok := o.rasterizer.(Measurer); ok {
			measurer = m
		}
	}
	loop := o.loop
	if loop == nil {
		loop = NewLoop(0)
	}

	e := &Editor{
		loop:     loop,
		overlay:  NewOverlay(measurer),
		notifier: o.notifier,
		exporter: &Exporter{
			rasterizer: o.rasterizer,
			sink:       o.sink,
			notifier:   o.notifier,
			filename:   o.filename,
			dpr:        o.dpr,
		},
		controls:   style,
		drags:      make(map[*Layer]*Drag),
		maxCaption: o.maxCaption,
	}
	e.gallery = newGallery(c, o.loader, loop)
	e.gallery.onLoad = func(*Background) { e.relayout() }
	return e, nil
}

// Loop returns the event loop the editor's asynchronous work reports to.
func (e *Editor) Loop() *Loop { return e.loop }

// Overlay returns the caption container.
func (e *Editor) Overlay() *Overlay { return e.overlay }

// Gallery returns the background image gallery.
func (e *Editor) Gallery() *Gallery { return e.gallery }

// Window returns the listener registry pointer events are dispatched on.
func (e *Editor) Window() *Window { return &e.window }

// Controls returns the current state of the style controls.
func (e *Editor) Controls() Style { return e.controls }

// Selected returns the selected layer, or nil.
func (e *Editor) Selected() *Layer { return e.sel.Current() }

// Layers returns the caption layers bottom to top.
func (e *Editor) Layers() []*Layer { return e.overlay.Layers() }

// Start displays the first catalog image, as the editor does when it opens.
func (e *Editor) Start(ctx context.Context) error {
	imgs := e.gallery.Images()
	if len(imgs) == 0 {
		return ErrNoImage
	}
	return e.SelectImage(ctx, imgs[0].ID)
}

// SelectImage displays the catalog image id. The container is re-laid out
// once the image has decoded; see WaitForImage.
func (e *Editor) SelectImage(ctx context.Context, id string) error {
	return e.gallery.Select(ctx, id)
}

// WaitForImage runs the loop until the displayed image has finished
// loading and returns its load error, if any.
func (e *Editor) WaitForImage(ctx context.Context) error {
	bg := e.gallery.Current()
	if bg == nil {
		return ErrNoImage
	}
	for e.gallery.Current().Pending() {
		if err := e.loop.RunOnce(ctx); err != nil {
			return err
		}
	}
	return e.gallery.Current().Err
}

// Resize sets the size of the area the image is displayed in and re-lays
// out the container.
func (e *Editor) Resize(viewport Size) {
	e.viewport = viewport
	e.relayout()
}

// relayout fits the displayed image into the viewport, keeping its aspect
// ratio and centering it, and makes that box the overlay container.
func (e *Editor) relayout() {
	natural := e.gallery.NaturalSize()
	switch {
	case natural.Empty():
		e.overlay.SetRect(Rect{Size: e.viewport})
	case e.viewport.Empty():
		e.overlay.SetRect(Rect{Size: natural})
	default:
		k := min(e.viewport.W/natural.W, e.viewport.H/natural.H)
		size := natural.Scale(k)
		e.overlay.SetRect(Rect{
			Min:  Point{X: (e.viewport.W - size.W) / 2, Y: (e.viewport.H - size.H) / 2},
			Size: size,
		})
	}
}

// AddCaption creates a caption layer at the center of the container with
// the current control style, puts it on top and selects it.
//
// Blank text is rejected with ErrEmptyCaption after alerting the user; the
// overlay is left untouched.
func (e *Editor) AddCaption(text string) (*Layer, error) {
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		e.notifier.Alert(emptyCaptionMessage)
		return nil, ErrEmptyCaption
	}
	if e.maxCaption > 0 && uniseg.GraphemeClusterCount(text) > e.maxCaption {
		e.notifier.Alert(longCaptionMessage)
		return nil, fmt.Errorf("%w: limit is %d", ErrCaptionTooLong, e.maxCaption)
	}

	e.nextID++
	l := &Layer{
		id:       e.nextID,
		Text:     text,
		Position: Percent{X: 50, Y: 50},
		Style:    e.controls,
	}
	e.overlay.Add(l)
	e.drags[l] = NewDrag(l, e.overlay, &e.window)
	e.drags[l].onEnd = e.dragEnded
	e.SelectLayer(l)
	return l, nil
}

// SelectLayer makes l the selection and reads its style back into the
// controls.
func (e *Editor) SelectLayer(l *Layer) {
	if l == nil {
		e.DeselectAll()
		return
	}
	e.sel.Select(l)
	e.controls = l.Style
}

// DeselectAll clears the selection. The controls keep their values.
func (e *Editor) DeselectAll() {
	e.sel.Clear()
}

// DeleteSelected removes the selected layer and reports whether one was
// removed.
func (e *Editor) DeleteSelected() bool {
	l := e.sel.Current()
	if l == nil {
		return false
	}
	e.sel.Clear()
	e.removeLayer(l)
	return true
}

func (e *Editor) removeLayer(l *Layer) {
	e.dropDrag(l)
	e.overlay.Remove(l)
}

// dropDrag forgets l's drag controller, ending a running session first so
// its listeners are detached.
func (e *Editor) dropDrag(l *Layer) {
	d := e.drags[l]
	if d == nil {
		return
	}
	if d.State() == DragDragging {
		d.end(PointerEvent{Kind: PointerUp})
	}
	delete(e.drags, l)
}

// ClearAll removes every caption after the user confirms. It reports
// whether anything was cleared; declining changes nothing.
func (e *Editor) ClearAll() bool {
	if !e.notifier.Confirm(clearAllQuestion) {
		return false
	}
	e.sel.Clear()
	for _, l := range e.overlay.Layers() {
		e.dropDrag(l)
	}
	e.overlay.Clear()
	return true
}

// SetFontSize sets the font size control and applies it to the selection.
func (e *Editor) SetFontSize(px int) error {
	if px < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidFontSize, px)
	}
	e.controls.FontSize = px
	e.sel.Apply(WithFontSize(px))
	return nil
}

// SetColor sets the color control and applies it to the selection.
func (e *Editor) SetColor(hex string) error {
	c, err := NormalizeColor(hex)
	if err != nil {
		return err
	}
	e.controls.Color = c
	e.sel.Apply(WithColor(c))
	return nil
}

// ToggleBold flips the bold control and applies it to the selection.
func (e *Editor) ToggleBold() {
	e.controls.Bold = !e.controls.Bold
	e.sel.Apply(WithBold(e.controls.Bold))
}

// ToggleItalic flips the italic control and applies it to the selection.
func (e *Editor) ToggleItalic() {
	e.controls.Italic = !e.controls.Italic
	e.sel.Apply(WithItalic(e.controls.Italic))
}

// PointerDown handles mouse-down and touch-start. On a layer it selects the
// layer and starts dragging it, and reports true. While another drag is in
// progress the event is ignored.
func (e *Editor) PointerDown(ev PointerEvent) bool {
	if e.active != nil {
		Logger().Debug("roast: pointer down ignored during drag")
		return false
	}
	l := e.overlay.HitTest(ev.Point())
	if l == nil {
		return false
	}
	e.SelectLayer(l)
	d := e.drags[l]
	if !d.Begin(ev) {
		return false
	}
	e.active = d
	return true
}

// PointerMove handles mouse-move and touch-move.
func (e *Editor) PointerMove(ev PointerEvent) {
	ev.Kind = PointerMove
	e.window.Dispatch(ev)
}

// PointerUp handles mouse-up and touch-end.
func (e *Editor) PointerUp(ev PointerEvent) {
	ev.Kind = PointerUp
	e.window.Dispatch(ev)
}

func (e *Editor) dragEnded(d *Drag) {
	if e.active == d {
		e.active = nil
	}
}

// Click handles a click at p: on a layer it selects it, anywhere else it
// clears the selection.
func (e *Editor) Click(p Point) {
	if l := e.overlay.HitTest(p); l != nil {
		e.SelectLayer(l)
		return
	}
	e.DeselectAll()
}

// KeyDown handles a key press while the selected layer has focus. Delete
// and Backspace remove it. It reports whether the key was handled.
func (e *Editor) KeyDown(key string) bool {
	switch key {
	case KeyDelete, KeyBackspace:
		return e.DeleteSelected()
	}
	return false
}

// Download exports the current composition as a PNG.
func (e *Editor) Download(ctx context.Context) error {
	return e.exporter.Export(ctx, e.overlay, e.gallery.Current())
}
