package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/climateroast/roast"
)

// defaultMoves is the number of pointer moves a drag makes when the step
// does not say.
const defaultMoves = 4

// grabGrid is the number of sample rows and columns searched for a point
// of a layer that no later layer covers.
const grabGrid = 8

var (
	errNoLayer = errors.New("no such layer")
	errCovered = errors.New("layer is covered")
)

// Player runs scripts against an editor.
type Player struct {
	editor *roast.Editor

	// OnStep, if set, is called after each step that succeeded.
	OnStep func(i int, s Step)
}

// NewPlayer returns a player for e.
func NewPlayer(e *roast.Editor) *Player {
	return &Player{editor: e}
}

// Play runs the steps of s in order and stops at the first failure, which
// is returned as a *StepError.
func (p *Player) Play(ctx context.Context, s *Script) error {
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Index: i, Op: st.Op, Err: err}
		}
		roast.Logger().Debug("session: step", "n", i+1, "op", st.Op)
		if err := p.Step(ctx, st); err != nil {
			return &StepError{Index: i, Op: st.Op, Err: err}
		}
		if p.OnStep != nil {
			p.OnStep(i, st)
		}
	}
	roast.Logger().Info("session: script finished", "steps", len(s.Steps))
	return nil
}

// Step runs a single step.
func (p *Player) Step(ctx context.Context, st Step) error {
	if err := st.validate(); err != nil {
		return err
	}
	e := p.editor
	switch st.Op {
	case StepSelectImage:
		return p.selectImage(ctx, st.Image)
	case StepWaitImage:
		return e.WaitForImage(ctx)
	case StepResize:
		e.Resize(roast.Sz(st.Width, st.Height))
	case StepAdd:
		_, err := e.AddCaption(st.Text)
		return err
	case StepSelect:
		l, err := p.layer(st.Layer)
		if err != nil {
			return err
		}
		e.SelectLayer(l)
	case StepDeselect:
		e.DeselectAll()
	case StepFontSize:
		return e.SetFontSize(st.Size)
	case StepColor:
		return e.SetColor(st.Color)
	case StepBold:
		e.ToggleBold()
	case StepItalic:
		e.ToggleItalic()
	case StepDrag:
		return p.drag(st)
	case StepDelete:
		if !e.DeleteSelected() {
			roast.Logger().Debug("session: delete with nothing selected")
		}
	case StepClear:
		if !e.ClearAll() {
			roast.Logger().Debug("session: clear declined")
		}
	case StepExport:
		return e.Download(ctx)
	default:
		return fmt.Errorf("%w: unknown op %s", ErrInvalidScript, st.Op)
	}
	return nil
}

// selectImage displays the image with the given id, falling back to the
// best fuzzy match.
func (p *Player) selectImage(ctx context.Context, query string) error {
	err := p.editor.SelectImage(ctx, query)
	if !errors.Is(err, roast.ErrUnknownImage) {
		return err
	}
	img, ok := p.editor.Gallery().Find(query)
	if !ok {
		return err
	}
	roast.Logger().Debug("session: fuzzy image match", "query", query, "id", img.ID)
	return p.editor.SelectImage(ctx, img.ID)
}

// layer returns the 1-based layer n, or the selection when n is zero.
func (p *Player) layer(n int) (*roast.Layer, error) {
	if n == 0 {
		if l := p.editor.Selected(); l != nil {
			return l, nil
		}
		return nil, fmt.Errorf("%w: nothing selected", errNoLayer)
	}
	layers := p.editor.Layers()
	if n > len(layers) {
		return nil, fmt.Errorf("%w: %d of %d", errNoLayer, n, len(layers))
	}
	return layers[n-1], nil
}

// drag presses on the layer, moves the pointer towards st.To in equal
// steps and releases. The press must grab the requested layer.
func (p *Player) drag(st Step) error {
	l, err := p.layer(st.Layer)
	if err != nil {
		return err
	}
	var from roast.Point
	if st.From != nil {
		from = st.From.client()
	} else if from, err = p.grabPoint(l); err != nil {
		return err
	}
	to := st.To.client()
	moves := st.Moves
	if moves == 0 {
		moves = defaultMoves
	}

	event := func(kind roast.PointerKind, at roast.Point) roast.PointerEvent {
		if st.Touch {
			return roast.Touch(kind, at)
		}
		return roast.Mouse(kind, at.X, at.Y)
	}

	prev := p.editor.Selected()
	if !p.editor.PointerDown(event(roast.PointerDown, from)) {
		return fmt.Errorf("pointer down at (%g, %g) did not grab layer %d", from.X, from.Y, l.ID())
	}
	if got := p.editor.Selected(); got != l {
		p.editor.PointerUp(event(roast.PointerUp, from))
		p.editor.SelectLayer(prev)
		return fmt.Errorf("%w: pointer down at (%g, %g) grabbed layer %d instead of %d",
			errCovered, from.X, from.Y, got.ID(), l.ID())
	}
	for i := 1; i <= moves; i++ {
		at := from.Add(to.Sub(from).Mul(float64(i) / float64(moves)))
		p.editor.PointerMove(event(roast.PointerMove, at))
	}
	p.editor.PointerUp(event(roast.PointerUp, to))
	return nil
}

// grabPoint returns a point inside l's box where l is the topmost layer,
// preferring the center.
func (p *Player) grabPoint(l *roast.Layer) (roast.Point, error) {
	ov := p.editor.Overlay()
	box := ov.LayerRect(l)
	if c := box.Center(); ov.HitTest(c) == l {
		return c, nil
	}
	for iy := range grabGrid {
		for ix := range grabGrid {
			at := roast.Pt(
				box.Min.X+box.Size.W*(float64(ix)+0.5)/grabGrid,
				box.Min.Y+box.Size.H*(float64(iy)+0.5)/grabGrid,
			)
			if ov.HitTest(at) == l {
				return at, nil
			}
		}
	}
	return roast.Point{}, fmt.Errorf("%w: layer %d", errCovered, l.ID())
}
