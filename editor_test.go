package roast

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/climateroast/roast/catalog"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) succeeded")
	}
	if _, err := New(&catalog.Catalog{}); !errors.Is(err, catalog.ErrInvalid) {
		t.Errorf("New(empty catalog) = %v, want catalog.ErrInvalid", err)
	}
	cat := catalog.Default()
	if _, err := New(cat, WithDefaultStyle(Style{FontSize: 12, Color: "blue"})); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("New(bad color) = %v, want ErrInvalidColor", err)
	}
	if _, err := New(cat, WithDefaultStyle(Style{FontSize: 0, Color: "#000"})); !errors.Is(err, ErrInvalidFontSize) {
		t.Errorf("New(bad size) = %v, want ErrInvalidFontSize", err)
	}
	ed, err := New(cat, WithDefaultStyle(Style{FontSize: 12, Color: "#ABC"}))
	if err != nil {
		t.Fatal(err)
	}
	if c := ed.Controls().Color; c != "#aabbcc" {
		t.Errorf("Controls().Color = %q, want normalized", c)
	}
}

func TestStart(t *testing.T) {
	f := newEditorFixture(t)
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if id := f.Gallery().Current().Image.ID; id != "a" {
		t.Errorf("Start() displayed %q, want the first image", id)
	}
	f.Loop().Drain()
}

func TestRelayoutContainsAndCenters(t *testing.T) {
	f := newEditorFixture(t)
	f.Resize(Sz(1000, 1000))
	if r := f.Overlay().Rect(); r != R(0, 0, 1000, 1000) {
		t.Errorf("rect before any image = %+v, want the viewport", r)
	}
	f.showImage(t, "a")
	if r := f.Overlay().Rect(); r != R(0, 250, 1000, 500) {
		t.Errorf("rect for 800x400 in 1000x1000 = %+v", r)
	}
	f.showImage(t, "b")
	if r := f.Overlay().Rect(); r != R(0, 0, 1000, 1000) {
		t.Errorf("rect for 400x400 in 1000x1000 = %+v", r)
	}
}

func TestAddCaption(t *testing.T) {
	f := newEditorFixture(t)
	l, err := f.AddCaption("  Hello  ")
	if err != nil {
		t.Fatalf("AddCaption() error = %v", err)
	}
	if l.Text != "Hello" || l.Position != Pct(50, 50) || l.Style != DefaultStyle() {
		t.Errorf("layer = %+v", l)
	}
	if f.Selected() != l || !l.Selected() {
		t.Error("new layer is not selected")
	}
	if l2, _ := f.AddCaption("again"); l2.ID() == l.ID() {
		t.Error("layer ids are not unique")
	}
}

func TestAddCaptionEmpty(t *testing.T) {
	f := newEditorFixture(t)
	for _, text := range []string{"", "   ", "\t\n"} {
		l, err := f.AddCaption(text)
		if !errors.Is(err, ErrEmptyCaption) || l != nil {
			t.Errorf("AddCaption(%q) = %v, %v; want ErrEmptyCaption", text, l, err)
		}
	}
	if len(f.Layers()) != 0 {
		t.Error("empty captions were added")
	}
	if len(f.notifier.alerts) != 3 || f.notifier.alerts[0] != emptyCaptionMessage {
		t.Errorf("alerts = %q", f.notifier.alerts)
	}
}

func TestAddCaptionNormalizes(t *testing.T) {
	f := newEditorFixture(t)
	l, err := f.AddCaption("Cafe\u0301")
	if err != nil {
		t.Fatal(err)
	}
	if l.Text != "Caf\u00e9" {
		t.Errorf("Text = %q, want NFC", l.Text)
	}
}

func TestAddCaptionTooLong(t *testing.T) {
	f := newEditorFixture(t, WithMaxCaptionLength(5))
	if _, err := f.AddCaption("12345"); err != nil {
		t.Errorf("AddCaption(5 graphemes) = %v", err)
	}
	if _, err := f.AddCaption("123456"); !errors.Is(err, ErrCaptionTooLong) {
		t.Errorf("AddCaption(6 graphemes) = %v, want ErrCaptionTooLong", err)
	}
	if n := len(f.Layers()); n != 1 {
		t.Errorf("len(Layers) = %d, want 1", n)
	}

	unlimited := newEditorFixture(t, WithMaxCaptionLength(0))
	if _, err := unlimited.AddCaption(strings.Repeat("x", 1000)); err != nil {
		t.Errorf("AddCaption with no limit = %v", err)
	}
}

func TestStyleControlsAffectOnlySelection(t *testing.T) {
	f := newEditorFixture(t)
	a, _ := f.AddCaption("a")
	b, _ := f.AddCaption("b")

	f.SelectLayer(a)
	if err := f.SetFontSize(40); err != nil {
		t.Fatal(err)
	}
	if a.Style.FontSize != 40 || b.Style.FontSize != DefaultFontSize {
		t.Errorf("sizes = %d, %d", a.Style.FontSize, b.Style.FontSize)
	}

	if err := f.SetColor("#0f0"); err != nil {
		t.Fatal(err)
	}
	f.ToggleBold()
	f.ToggleItalic()
	if a.Style != (Style{FontSize: 40, Color: "#00ff00", Bold: true, Italic: true}) {
		t.Errorf("a.Style = %+v", a.Style)
	}
	if b.Style != DefaultStyle() {
		t.Errorf("b.Style changed: %+v", b.Style)
	}

	// Selecting b reads its style back into the controls.
	f.SelectLayer(b)
	if f.Controls() != b.Style {
		t.Errorf("Controls() = %+v, want %+v", f.Controls(), b.Style)
	}
}

func TestStyleControlsWithoutSelection(t *testing.T) {
	f := newEditorFixture(t)
	a, _ := f.AddCaption("a")
	f.DeselectAll()

	if err := f.SetFontSize(50); err != nil {
		t.Fatal(err)
	}
	f.ToggleBold()
	if a.Style != DefaultStyle() {
		t.Errorf("unselected layer changed: %+v", a.Style)
	}
	if c := f.Controls(); c.FontSize != 50 || !c.Bold {
		t.Errorf("Controls() = %+v", c)
	}
	b, _ := f.AddCaption("b")
	if b.Style.FontSize != 50 || !b.Style.Bold {
		t.Errorf("new layer did not take the control style: %+v", b.Style)
	}
}

func TestStyleControlErrors(t *testing.T) {
	f := newEditorFixture(t)
	a, _ := f.AddCaption("a")
	if err := f.SetFontSize(0); !errors.Is(err, ErrInvalidFontSize) {
		t.Errorf("SetFontSize(0) = %v", err)
	}
	if err := f.SetColor("#12"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("SetColor(#12) = %v", err)
	}
	if a.Style != DefaultStyle() || f.Controls() != DefaultStyle() {
		t.Error("rejected control values were applied")
	}
}

func TestDeleteSelected(t *testing.T) {
	f := newEditorFixture(t)
	if f.DeleteSelected() {
		t.Error("DeleteSelected() with nothing selected = true")
	}
	a, _ := f.AddCaption("a")
	b, _ := f.AddCaption("b")
	f.SelectLayer(a)

	if !f.KeyDown(KeyDelete) {
		t.Fatal("KeyDown(Delete) = false")
	}
	layers := f.Layers()
	if len(layers) != 1 || layers[0] != b || f.Selected() != nil {
		t.Errorf("after delete: layers %v, selected %v", layers, f.Selected())
	}
	if f.KeyDown(KeyBackspace) {
		t.Error("KeyDown(Backspace) without selection = true")
	}
	if f.KeyDown("Enter") {
		t.Error("KeyDown(Enter) = true")
	}
}

func TestClearAll(t *testing.T) {
	f := newEditorFixture(t)
	f.AddCaption("a")
	f.AddCaption("b")

	f.notifier.answer = false
	if f.ClearAll() || len(f.Layers()) != 2 {
		t.Error("declined ClearAll removed layers")
	}
	f.notifier.answer = true
	if !f.ClearAll() || len(f.Layers()) != 0 || f.Selected() != nil {
		t.Error("confirmed ClearAll left state behind")
	}
	if len(f.notifier.questions) != 2 || f.notifier.questions[0] != clearAllQuestion {
		t.Errorf("questions = %q", f.notifier.questions)
	}
}

func TestClickSelection(t *testing.T) {
	f := newEditorFixture(t)
	f.showImage(t, "b")
	f.Resize(Sz(400, 400))
	l, _ := f.AddCaption("a")
	f.DeselectAll()

	f.Click(Pt(200, 200))
	if f.Selected() != l {
		t.Error("click on layer did not select it")
	}
	f.Click(Pt(5, 5))
	if f.Selected() != nil {
		t.Error("click on empty space did not deselect")
	}
}

func TestPointerDrag(t *testing.T) {
	f := newEditorFixture(t)
	f.showImage(t, "b")
	f.Resize(Sz(400, 400))
	a, _ := f.AddCaption("a")
	b, _ := f.AddCaption("b")
	b.Position = Pct(20, 20)
	f.SelectLayer(b)

	if f.PointerDown(Mouse(PointerDown, 5, 395)) {
		t.Error("PointerDown on empty space started a drag")
	}
	if f.Selected() != b {
		t.Error("PointerDown on empty space changed the selection")
	}

	if !f.PointerDown(Mouse(PointerDown, 200, 200)) {
		t.Fatal("PointerDown on layer a = false")
	}
	if f.Selected() != a {
		t.Error("PointerDown did not select the pressed layer")
	}
	// A second press during the drag is ignored.
	if f.PointerDown(Mouse(PointerDown, 80, 80)) {
		t.Error("PointerDown during a drag started another")
	}
	f.PointerMove(Mouse(PointerMove, 2000, 200))
	f.PointerUp(Mouse(PointerUp, 2000, 200))

	// (400-56)/400
	if !nearly(a.Position.X, 86) || !nearly(a.Position.Y, 50) {
		t.Errorf("a.Position = %+v, want (86, 50)", a.Position)
	}
	if b.Position != Pct(20, 20) {
		t.Errorf("b moved: %+v", b.Position)
	}
	if !f.PointerDown(Mouse(PointerDown, 80, 80)) {
		t.Error("PointerDown after the drag ended = false")
	}
	f.PointerUp(Mouse(PointerUp, 80, 80))
}

func TestDeleteDuringDragDetachesListeners(t *testing.T) {
	f := newEditorFixture(t)
	f.showImage(t, "b")
	f.Resize(Sz(400, 400))
	f.AddCaption("a")

	if !f.PointerDown(Mouse(PointerDown, 200, 200)) {
		t.Fatal("PointerDown = false")
	}
	f.DeleteSelected()
	for _, k := range []PointerKind{PointerMove, PointerUp} {
		if n := f.Window().ListenerCount(k); n != 0 {
			t.Errorf("ListenerCount(%v) = %d after delete, want 0", k, n)
		}
	}
	if _, err := f.AddCaption("b"); err != nil {
		t.Fatal(err)
	}
	if !f.PointerDown(Mouse(PointerDown, 200, 200)) {
		t.Error("drag state leaked past the deleted layer")
	}
}

func TestDragThenResizeScenario(t *testing.T) {
	f := newEditorFixture(t)
	f.showImage(t, "a")
	f.showImage(t, "b")
	f.Resize(Sz(400, 400))

	l, err := f.AddCaption("Test")
	if err != nil {
		t.Fatal(err)
	}
	if !f.PointerDown(Mouse(PointerDown, 200, 200)) {
		t.Fatal("PointerDown = false")
	}
	f.PointerMove(Mouse(PointerMove, -100, -100))
	f.PointerUp(Mouse(PointerUp, -100, -100))

	pct := l.Position
	if !nearly(pct.X, 14) || !nearly(pct.Y, 4) {
		t.Fatalf("Position after drag = %+v, want (14, 4)", pct)
	}
	before := f.Overlay().PixelPosition(l)

	// Halve the container width: the viewport becomes 200x400, the square
	// image fits in 200x200.
	f.Resize(Sz(200, 400))
	if l.Position != pct {
		t.Errorf("resize changed the percent position: %+v", l.Position)
	}
	after := f.Overlay().PixelPosition(l)
	r := f.Overlay().Rect()
	if !nearly(after.X-r.Min.X, (before.X)/2) {
		t.Errorf("x offset after resize = %g, want %g", after.X-r.Min.X, before.X/2)
	}
}
