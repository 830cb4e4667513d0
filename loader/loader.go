// Package loader decodes background images for the gallery.
//
// FileLoader resolves catalog URLs against the local filesystem, the only
// origin the editor serves from. Remote URLs are refused with
// ErrCrossOrigin; fetching them is out of scope.
//
// Decoded images are cached per URL, and concurrent loads of the same URL
// share a single decode.
package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/climateroast/roast"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// ErrCrossOrigin is returned for http and https URLs.
var ErrCrossOrigin = errors.New("loader: cross-origin image")

// FileLoader loads images from the local filesystem.
//
// FileLoader is safe for concurrent use.
type FileLoader struct {
	base  string
	cache bool

	group singleflight.Group

	mu     sync.Mutex
	images map[string]image.Image
}

// Option configures a FileLoader.
type Option func(*FileLoader)

// WithoutCache disables the decoded image cache. Concurrent loads of the
// same URL are still shared.
func WithoutCache() Option {
	return func(l *FileLoader) {
		l.cache = false
	}
}

// New creates a loader resolving relative paths against base.
// An empty base means the working directory.
func New(base string, opts ...Option) *FileLoader {
	l := &FileLoader{
		base:   base,
		cache:  true,
		images: make(map[string]image.Image),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load decodes the image at rawURL.
func (l *FileLoader) Load(ctx context.Context, rawURL string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img, ok := l.cached(rawURL); ok {
		roast.Logger().Debug("loader: cache hit", "url", rawURL)
		return img, nil
	}

	v, err, shared := l.group.Do(rawURL, func() (any, error) {
		path, err := l.Resolve(rawURL)
		if err != nil {
			return nil, err
		}
		img, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		if l.cache {
			l.mu.Lock()
			l.images[rawURL] = img
			l.mu.Unlock()
		}
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		roast.Logger().Debug("loader: shared decode", "url", rawURL)
	}
	return v.(image.Image), nil
}

func (l *FileLoader) cached(rawURL string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.images[rawURL]
	return img, ok
}

// Resolve maps a catalog URL to a filesystem path.
func (l *FileLoader) Resolve(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("loader: parsing url %q: %w", rawURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return "", fmt.Errorf("%w: %s", ErrCrossOrigin, u.Host)
	case "file":
		return filepath.FromSlash(u.Path), nil
	case "":
		p := filepath.FromSlash(u.Path)
		if filepath.IsAbs(p) || l.base == "" {
			return p, nil
		}
		return filepath.Join(l.base, p), nil
	default:
		return "", fmt.Errorf("loader: unsupported scheme %q", u.Scheme)
	}
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loader: decoding %s: %w", filepath.Base(path), err)
	}
	b := img.Bounds()
	roast.Logger().Info("loader: decoded image",
		"path", path, "format", format, "w", b.Dx(), "h", b.Dy())
	return img, nil
}
