package roast

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// DefaultFilename is the name the exported PNG is delivered under.
const DefaultFilename = "climate-roast.png"

// maxExportScale caps the device-pixel-ratio scale of exports.
const maxExportScale = 2

// exportFailedMessage is shown when rasterization fails. Cross-origin
// backgrounds are the usual cause.
const exportFailedMessage = "Export failed. If the background image is hosted on another origin, " +
	"serve the images from the same origin as the editor (for example run a local server " +
	"such as \"python -m http.server\", or use local image files) and try again."

// LayerSnapshot is the immutable state of one caption at export time.
type LayerSnapshot struct {
	Text     string
	Position Percent
	Style    Style
	Selected bool
}

// Scene is what a Rasterizer draws: the container, its background and the
// captions bottom to top.
type Scene struct {
	// Size is the container size in CSS pixels; the output is Size*Scale.
	Size Size

	// Background may be nil or not yet loaded, in which case only the
	// captions are drawn.
	Background *Background

	Layers []LayerSnapshot

	// Highlight draws the selection outline around the selected layer.
	Highlight bool
}

// RasterOptions control rasterization.
type RasterOptions struct {
	// CrossOriginSafe requests sampling that never reads tainted pixels.
	CrossOriginSafe bool

	// AllowTaint lets a cross-origin background into the output anyway.
	AllowTaint bool

	// Transparent leaves uncovered pixels transparent instead of black.
	Transparent bool

	// Scale multiplies the output resolution.
	Scale float64
}

// Rasterizer renders a scene to a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, sc Scene, opts RasterOptions) (image.Image, error)
}

// Sink receives the exported file.
type Sink interface {
	Save(name string, data []byte) error
}

// DirSink saves exports into a directory.
type DirSink string

// Save writes data to name inside the directory.
func (d DirSink) Save(name string, data []byte) error {
	path := filepath.Join(string(d), filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	Logger().Info("roast: export written", "path", path, "bytes", len(data))
	return nil
}

// ExportScale returns the output scale for a device pixel ratio: the ratio
// capped at 2, with non-positive ratios treated as 1.
func ExportScale(devicePixelRatio float64) float64 {
	if devicePixelRatio <= 0 {
		return 1
	}
	return min(devicePixelRatio, maxExportScale)
}

// Exporter is the bridge from the overlay to a downloadable PNG.
type Exporter struct {
	rasterizer Rasterizer
	sink       Sink
	notifier   Notifier
	filename   string
	dpr        float64
}

// Export rasterizes the overlay over bg and saves the PNG to the sink.
//
// The selection outline is hidden while the scene is captured and restored
// afterwards whatever the outcome. Failures are logged, reported to the
// notifier with a remediation hint and returned wrapped in ErrExport.
// There is no retry.
func (x *Exporter) Export(ctx context.Context, o *Overlay, bg *Background) (err error) {
	highlight := o.Highlighted()
	o.SetHighlight(false)
	defer o.SetHighlight(highlight)

	defer func() {
		if err != nil {
			Logger().Error("roast: export failed", "err", err)
			x.notifier.Alert(exportFailedMessage)
			err = fmt.Errorf("%w: %w", ErrExport, err)
		}
	}()

	if x.rasterizer == nil {
		return errNoRasterizer
	}
	opts := RasterOptions{
		CrossOriginSafe: true,
		AllowTaint:      false,
		Transparent:     true,
		Scale:           ExportScale(x.dpr),
	}
	img, err := x.rasterizer.Rasterize(ctx, o.Snapshot(bg), opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return x.sink.Save(x.filename, buf.Bytes())
}
