// Command roast plays caption-editing scripts and exports the result.
//
// Usage:
//
//	roast [flags] script.yaml
//	roast -thumbs DIR [flags]
//
// Images are read from local files; the default catalog points at remote
// photos, which cannot be exported, so pass -catalog with local URLs to
// get a PNG out.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/climateroast/roast"
	"github.com/climateroast/roast/canvas"
	"github.com/climateroast/roast/catalog"
	"github.com/climateroast/roast/loader"
	"github.com/climateroast/roast/session"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "", "image catalog YAML (default: built-in catalog)")
		base        = flag.String("base", "", "directory relative image URLs are resolved against (default: catalog directory)")
		out         = flag.String("out", ".", "directory exports are written to")
		width       = flag.Float64("width", 800, "viewport width in CSS pixels")
		height      = flag.Float64("height", 600, "viewport height in CSS pixels")
		dpr         = flag.Float64("dpr", 1, "device pixel ratio (exports are capped at 2x)")
		yes         = flag.Bool("yes", false, "answer yes to confirmations")
		verbose     = flag.Bool("v", false, "verbose logging")
		thumbs      = flag.String("thumbs", "", "write gallery thumbnails to this directory and exit")
		thumbSize   = flag.Int("thumb-size", 160, "thumbnail size in pixels")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: roast [flags] script.yaml\n       roast -thumbs DIR [flags]\n\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	roast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cat, baseDir, err := openCatalog(*catalogPath, *base)
	if err != nil {
		log.Fatalf("roast: %v", err)
	}
	ld := loader.New(baseDir)

	if *thumbs != "" {
		if err := writeThumbnails(ctx, cat, ld, *thumbs, *thumbSize); err != nil {
			log.Fatalf("roast: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	script, err := session.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("roast: %v", err)
	}

	rz, err := canvas.New()
	if err != nil {
		log.Fatalf("roast: %v", err)
	}
	defer func() { _ = rz.Close() }()

	ed, err := roast.New(cat,
		roast.WithLoader(ld),
		roast.WithRasterizer(rz),
		roast.WithSink(roast.DirSink(*out)),
		roast.WithNotifier(newTermNotifier(*yes)),
		roast.WithDevicePixelRatio(*dpr),
	)
	if err != nil {
		log.Fatalf("roast: %v", err)
	}
	ed.Resize(roast.Sz(*width, *height))
	if err := ed.Start(ctx); err != nil {
		log.Fatalf("roast: %v", err)
	}

	if err := session.NewPlayer(ed).Play(ctx, script); err != nil {
		ed.Loop().Drain()
		log.Fatalf("roast: %v", err)
	}
	ed.Loop().Drain()
}

// openCatalog loads the catalog at path, or the built-in one when path is
// empty, and works out the directory image paths are relative to.
func openCatalog(path, base string) (*catalog.Catalog, string, error) {
	if path == "" {
		if base == "" {
			base = "."
		}
		return catalog.Default(), base, nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, "", err
	}
	if base == "" {
		base = filepath.Dir(path)
	}
	return cat, base, nil
}

// writeThumbnails writes one PNG per catalog image into dir. Images that
// fail to load are logged and skipped.
func writeThumbnails(ctx context.Context, cat *catalog.Catalog, ld roast.Loader, dir string, size int) error {
	ed, err := roast.New(cat, roast.WithLoader(ld))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	thumbs, err := ed.Gallery().Thumbnails(ctx, size)
	if err != nil {
		return err
	}
	var failed int
	for _, th := range thumbs {
		if th.Err != nil {
			failed++
			roast.Logger().Warn("roast: thumbnail skipped", "id", th.Image.ID, "err", th.Err)
			continue
		}
		if err := savePNG(filepath.Join(dir, th.Image.ID+".png"), th); err != nil {
			return err
		}
	}
	if failed == len(thumbs) {
		return errors.New("no thumbnails could be written")
	}
	log.Printf("%d thumbnails written to %s", len(thumbs)-failed, dir)
	return nil
}

func savePNG(path string, th roast.Thumbnail) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, th.Pixels)
}
