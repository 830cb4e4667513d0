package roast

// DragState is the state of a layer's drag controller.
type DragState uint8

const (
	DragIdle DragState = iota
	DragDragging
)

// String returns "Idle" or "Dragging".
func (s DragState) String() string {
	if s == DragDragging {
		return "Dragging"
	}
	return "Idle"
}

// Drag is the pointer-tracking state machine of one layer.
//
// Begin moves it from Idle to Dragging and captures, once per drag, the grab
// offset inside the layer box, the container rect and the layer size.
// Moves are converted with ToPercent using those captured values, so the
// container is not re-queried mid-drag. Each session registers its own move
// and up listeners on the Window and removes them when the pointer is
// released.
type Drag struct {
	layer   *Layer
	overlay *Overlay
	window  *Window

	state     DragState
	grab      Point
	container Rect
	size      Size
	detach    []func()

	// onEnd is called after the session has detached its listeners.
	onEnd func(*Drag)
}

// NewDrag creates an idle drag controller for l.
func NewDrag(l *Layer, o *Overlay, w *Window) *Drag {
	return &Drag{layer: l, overlay: o, window: w}
}

// State returns the current state.
func (d *Drag) State() DragState { return d.state }

// Layer returns the layer this controller moves.
func (d *Drag) Layer() *Layer { return d.layer }

// Begin starts a drag session for a pointer-down event. It reports false if
// a session is already running.
func (d *Drag) Begin(ev PointerEvent) bool {
	if d.state == DragDragging {
		return false
	}
	box := d.overlay.LayerRect(d.layer)
	d.grab = ev.Point().Sub(box.Min)
	d.container = d.overlay.Rect()
	d.size = box.Size
	d.state = DragDragging

	d.detach = append(d.detach[:0],
		d.window.Listen(PointerMove, d.move),
		d.window.Listen(PointerUp, d.end),
	)
	Logger().Debug("roast: drag start", "layer", d.layer.id,
		"grab_x", d.grab.X, "grab_y", d.grab.Y)
	return true
}

func (d *Drag) move(ev PointerEvent) {
	d.layer.Position = ToPercent(ev.Point(), d.grab, d.container, d.size)
}

func (d *Drag) end(PointerEvent) {
	for _, remove := range d.detach {
		remove()
	}
	d.detach = d.detach[:0]
	d.state = DragIdle
	Logger().Debug("roast: drag end", "layer", d.layer.id,
		"x", d.layer.Position.X, "y", d.layer.Position.Y)
	if d.onEnd != nil {
		d.onEnd(d)
	}
}
