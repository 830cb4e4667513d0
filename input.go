package roast

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota // mousedown / touchstart
	PointerMove                    // mousemove / touchmove
	PointerUp                      // mouseup / touchend

	pointerKindCount
)

var pointerKindNames = [...]string{
	PointerDown: "PointerDown",
	PointerMove: "PointerMove",
	PointerUp:   "PointerUp",
}

// String returns the name of the pointer kind.
func (k PointerKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "Unknown"
}

// PointerSource tells mouse events from touch events.
type PointerSource uint8

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// PointerEvent is a toolkit-neutral mouse or touch event.
type PointerEvent struct {
	Kind   PointerKind
	Source PointerSource

	// Client is the pointer position for mouse events.
	Client Point

	// Touches holds the active touch points for touch events.
	// Touch-end events usually carry none.
	Touches []Point
}

// Point extracts the pointer position: the first active touch point when
// there is one, the client coordinates otherwise.
func (e PointerEvent) Point() Point {
	if len(e.Touches) > 0 {
		return e.Touches[0]
	}
	return e.Client
}

// Mouse builds a mouse event at (x, y).
func Mouse(kind PointerKind, x, y float64) PointerEvent {
	return PointerEvent{Kind: kind, Source: SourceMouse, Client: Pt(x, y)}
}

// Touch builds a touch event with the given active touch points.
func Touch(kind PointerKind, touches ...Point) PointerEvent {
	return PointerEvent{Kind: kind, Source: SourceTouch, Touches: touches}
}

// Keys handled by the editor.
const (
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
)

// PointerListener receives pointer events from a Window.
type PointerListener func(PointerEvent)

type listenerEntry struct {
	id int
	fn PointerListener
}

// Window is the window-level listener registry pointer events are
// dispatched through. Drag sessions register their move and up listeners
// here for the duration of one drag.
type Window struct {
	listeners [pointerKindCount][]listenerEntry
	nextID    int
}

// Listen registers fn for events of the given kind and returns the function
// that removes it. Calling remove more than once is harmless.
func (w *Window) Listen(kind PointerKind, fn PointerListener) (remove func()) {
	w.nextID++
	id := w.nextID
	w.listeners[kind] = append(w.listeners[kind], listenerEntry{id: id, fn: fn})
	return func() {
		entries := w.listeners[kind]
		for i, e := range entries {
			if e.id == id {
				w.listeners[kind] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener registered for its kind and
// returns how many were called. Listeners may remove themselves while being
// dispatched.
func (w *Window) Dispatch(ev PointerEvent) int {
	if int(ev.Kind) >= len(w.listeners) {
		return 0
	}
	entries := append([]listenerEntry(nil), w.listeners[ev.Kind]...)
	for _, e := range entries {
		e.fn(ev)
	}
	return len(entries)
}

// ListenerCount returns the number of listeners registered for kind.
func (w *Window) ListenerCount(kind PointerKind) int {
	if int(kind) >= len(w.listeners) {
		return 0
	}
	return len(w.listeners[kind])
}
