package roast

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/climateroast/roast/catalog"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Loader decodes the image behind a catalog URL.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, url string) (image.Image, error)

// Load calls f(ctx, url).
func (f LoaderFunc) Load(ctx context.Context, url string) (image.Image, error) { return f(ctx, url) }

var errNoLoader = errors.New("roast: no image loader configured")

// Background is the image currently displayed behind the overlay.
type Background struct {
	Image catalog.Image

	// Pixels holds the decoded image once loading has finished.
	Pixels image.Image

	// Size is the natural size of the decoded image.
	Size Size

	Loaded bool
	Err    error

	// Tainted is set for cross-origin images, which rasterizers may refuse
	// to sample.
	Tainted bool
}

// Pending reports whether the image is still being decoded.
func (b *Background) Pending() bool {
	return !b.Loaded && b.Err == nil
}

// Gallery is the list of selectable background images and the one on
// display.
//
// Selecting an image swaps the display immediately and decodes it on a
// worker goroutine. The result is posted back to the loop, where the
// overlay is re-laid out; until then the previous natural size stays in
// use. Captions are never touched by a selection.
type Gallery struct {
	catalog *catalog.Catalog
	loader  Loader
	loop    *Loop

	current *Background
	natural Size
	gen     int

	// onLoad runs on the loop after the current image decoded.
	onLoad func(*Background)
}

func newGallery(c *catalog.Catalog, l Loader, loop *Loop) *Gallery {
	if l == nil {
		l = LoaderFunc(func(context.Context, string) (image.Image, error) {
			return nil, errNoLoader
		})
	}
	return &Gallery{catalog: c, loader: l, loop: loop}
}

// Images returns the catalog entries in display order.
func (g *Gallery) Images() []catalog.Image {
	return append([]catalog.Image(nil), g.catalog.Images...)
}

// Current returns the displayed background, or nil before the first
// selection.
func (g *Gallery) Current() *Background { return g.current }

// NaturalSize returns the natural size of the most recently decoded image.
// It lags behind Current while a new selection is being decoded.
func (g *Gallery) NaturalSize() Size { return g.natural }

// Find returns the best catalog match for query by id or alt text.
func (g *Gallery) Find(query string) (catalog.Image, bool) {
	matches := g.catalog.Find(query)
	if len(matches) == 0 {
		return catalog.Image{}, false
	}
	return matches[0], true
}

// Select displays the image with the given id and starts decoding it.
// ctx bounds the decode.
func (g *Gallery) Select(ctx context.Context, id string) error {
	img, ok := g.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownImage, id)
	}

	g.gen++
	gen := g.gen
	bg := &Background{Image: img, Tainted: img.CrossOrigin()}
	g.current = bg
	Logger().Debug("roast: image selected", "id", img.ID, "cross_origin", bg.Tainted)

	go func() {
		px, err := g.loader.Load(ctx, img.URL)
		g.loop.Post(func() { g.finish(gen, bg, px, err) })
	}()
	return nil
}

func (g *Gallery) finish(gen int, bg *Background, px image.Image, err error) {
	if gen != g.gen {
		Logger().Debug("roast: dropping stale image load", "id", bg.Image.ID)
		return
	}
	if err != nil {
		bg.Err = err
		Logger().Warn("roast: image failed to load", "id", bg.Image.ID, "err", err)
		return
	}
	b := px.Bounds()
	bg.Pixels = px
	bg.Size = Size{W: float64(b.Dx()), H: float64(b.Dy())}
	bg.Loaded = true
	g.natural = bg.Size
	Logger().Info("roast: image loaded", "id", bg.Image.ID, "w", b.Dx(), "h", b.Dy())
	if g.onLoad != nil {
		g.onLoad(bg)
	}
}

// Thumbnail is a scaled-down catalog image for the selection strip.
type Thumbnail struct {
	Image  catalog.Image
	Pixels image.Image
	Err    error
}

// thumbnailWorkers bounds the number of concurrent thumbnail decodes.
const thumbnailWorkers = 4

// Thumbnails decodes every catalog image and scales it to fit in a
// maxSide square. A failed image is reported in its Thumbnail and does not
// stop the others; only cancellation of ctx fails the call.
//
// Thumbnails does not touch editor state and may run on any goroutine.
func (g *Gallery) Thumbnails(ctx context.Context, maxSide int) ([]Thumbnail, error) {
	images := g.Images()
	out := make([]Thumbnail, len(images))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(thumbnailWorkers)
	for i, img := range images {
		eg.Go(func() error {
			out[i].Image = img
			px, err := g.loader.Load(egCtx, img.URL)
			if err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Pixels = fitSquare(px, maxSide)
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// fitSquare scales src down to fit in a side x side square, keeping the
// aspect ratio. Smaller images are returned unchanged.
func fitSquare(src image.Image, side int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if side <= 0 || (w <= side && h <= side) || w == 0 || h == 0 {
		return src
	}
	tw, th := side, side
	if w >= h {
		th = max(1, h*side/w)
	} else {
		tw = max(1, w*side/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
