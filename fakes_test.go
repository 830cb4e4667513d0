package roast

import (
	"context"
	"errors"
	"image"
	"math"
	"sync"
	"testing"

	"github.com/climateroast/roast/catalog"
)

// fixedMeasurer measures every caption as 100x20, giving a 112x32 box.
var fixedMeasurer = MeasureFunc(func(string, Style) Size { return Sz(100, 20) })

type fakeNotifier struct {
	alerts    []string
	questions []string
	answer    bool
}

func (n *fakeNotifier) Alert(msg string) { n.alerts = append(n.alerts, msg) }

func (n *fakeNotifier) Confirm(msg string) bool {
	n.questions = append(n.questions, msg)
	return n.answer
}

type fakeRasterizer struct {
	err    error
	scenes []Scene
	opts   []RasterOptions
}

func (r *fakeRasterizer) Rasterize(_ context.Context, sc Scene, opts RasterOptions) (image.Image, error) {
	r.scenes = append(r.scenes, sc)
	r.opts = append(r.opts, opts)
	if r.err != nil {
		return nil, r.err
	}
	w := int(math.Round(sc.Size.W * opts.Scale))
	h := int(math.Round(sc.Size.H * opts.Scale))
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

type memSink struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (s *memSink) Save(name string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[name] = data
	return nil
}

// sizedLoader decodes every URL to a blank image of the size registered
// for it. Unknown URLs fail.
type sizedLoader struct {
	mu    sync.Mutex
	sizes map[string]image.Point
	calls int
}

var errNotFound = errors.New("not found")

func (l *sizedLoader) Load(ctx context.Context, url string) (image.Image, error) {
	l.mu.Lock()
	l.calls++
	sz, ok := l.sizes[url]
	l.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNotFound
	}
	return image.NewRGBA(image.Rect(0, 0, sz.X, sz.Y)), nil
}

const twoImageCatalog = `
images:
  - id: a
    url: a.png
    alt: Smokestacks over a river
  - id: b
    url: b.png
    alt: Flooded street
  - id: broken
    url: missing.png
    alt: Not on disk
`

type editorFixture struct {
	*Editor
	notifier *fakeNotifier
	raster   *fakeRasterizer
	sink     *memSink
	loader   *sizedLoader
}

func newEditorFixture(t *testing.T, opts ...Option) *editorFixture {
	t.Helper()
	cat, err := catalog.Parse([]byte(twoImageCatalog))
	if err != nil {
		t.Fatalf("catalog.Parse() error = %v", err)
	}
	f := &editorFixture{
		notifier: &fakeNotifier{answer: true},
		raster:   &fakeRasterizer{},
		sink:     &memSink{},
		loader: &sizedLoader{sizes: map[string]image.Point{
			"a.png": {X: 800, Y: 400},
			"b.png": {X: 400, Y: 400},
		}},
	}
	base := []Option{
		WithLoader(f.loader),
		WithMeasurer(fixedMeasurer),
		WithRasterizer(f.raster),
		WithNotifier(f.notifier),
		WithSink(f.sink),
	}
	f.Editor, err = New(cat, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

// showImage selects id and waits for it to decode.
func (f *editorFixture) showImage(t *testing.T, id string) {
	t.Helper()
	ctx := context.Background()
	if err := f.SelectImage(ctx, id); err != nil {
		t.Fatalf("SelectImage(%q) error = %v", id, err)
	}
	if err := f.WaitForImage(ctx); err != nil {
		t.Fatalf("WaitForImage(%q) error = %v", id, err)
	}
}

func nearly(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
