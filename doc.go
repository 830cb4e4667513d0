// Package roast is the model of a caption editor for climate "roast" memes:
// pick a background photo, stack text captions on top of it, drag and style
// them, and export the composition as a PNG.
//
// # Overview
//
// An Editor owns a Gallery of background images, an Overlay of caption
// layers, the current Selection and the style controls. Every exported
// Editor method is the handler of one control or input event (add caption,
// toggle bold, pointer down, key press, download), so any toolkit, a test
// or a script player can drive it.
//
// # Quick Start
//
//	rz, err := canvas.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rz.Close()
//
//	ed, err := roast.New(catalog.Default(),
//	    roast.WithLoader(loader.New("photos")),
//	    roast.WithRasterizer(rz),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ed.Resize(roast.Sz(800, 600))
//	ed.SelectImage(ctx, "ice")
//	ed.WaitForImage(ctx)
//	ed.AddCaption("We had a good run")
//	err = ed.Download(ctx)
//
// # Coordinates
//
// Layer positions are percentages of the overlay container, so captions
// stay anchored to the same spot of the image when the container is
// resized or another image is shown. The container is the box the
// displayed image occupies inside the viewport, fitted and centered. A
// dragged layer's whole box is kept inside the container.
//
// # Concurrency
//
// Editor state belongs to one goroutine, the one that runs the editor's
// Loop. Image decodes run on worker goroutines and post their results back
// to the Loop. Export runs synchronously against a Snapshot of the overlay.
//
// # Sub-packages
//
//   - catalog: the YAML list of selectable background images
//   - loader: decodes local image files, refusing cross-origin URLs
//   - canvas: gg-based rasterizer and text measurer
//   - session: YAML scripts played back against an Editor
//
// # Logging
//
// roast is silent by default; see SetLogger.
package roast
