package loader

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestResolve(t *testing.T) {
	l := New("/srv/photos")
	tests := []struct {
		url     string
		want    string
		wantErr error
	}{
		{"factory.png", filepath.Join("/srv/photos", "factory.png"), nil},
		{"sub/ice.jpg", filepath.Join("/srv/photos", "sub", "ice.jpg"), nil},
		{"/abs/oil.png", filepath.FromSlash("/abs/oil.png"), nil},
		{"file:///data/car.webp", filepath.FromSlash("/data/car.webp"), nil},
		{"https://images.example.com/a.jpg", "", ErrCrossOrigin},
		{"http://example.com/a.jpg", "", ErrCrossOrigin},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := l.Resolve(tt.url)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveUnsupportedScheme(t *testing.T) {
	if _, err := New("").Resolve("ftp://example.com/a.png"); err == nil {
		t.Fatal("Resolve(ftp) succeeded")
	}
}

func TestLoadDecodesAndCaches(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 40, 20)

	l := New(dir)
	img, err := l.Load(context.Background(), "a.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 40x20", b)
	}

	// The cached image survives removal of the file.
	if err := os.Remove(filepath.Join(dir, "a.png")); err != nil {
		t.Fatal(err)
	}
	again, err := l.Load(context.Background(), "a.png")
	if err != nil {
		t.Fatalf("cached Load() error = %v", err)
	}
	if again != img {
		t.Error("cached Load() returned a different image")
	}
}

func TestLoadWithoutCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 4, 4)

	l := New(dir, WithoutCache())
	if _, err := l.Load(context.Background(), "a.png"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(context.Background(), "a.png"); err == nil {
		t.Error("Load() after removal succeeded without cache")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	l := New(dir)

	if _, err := l.Load(context.Background(), "missing.png"); err == nil {
		t.Error("Load(missing) succeeded")
	}
	if _, err := l.Load(context.Background(), "junk.png"); err == nil {
		t.Error("Load(junk) succeeded")
	}
	if _, err := l.Load(context.Background(), "https://example.com/x.png"); !errors.Is(err, ErrCrossOrigin) {
		t.Errorf("Load(remote) error = %v, want ErrCrossOrigin", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, "missing.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestLoadConcurrent(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 16, 16)
	l := New(dir)

	var wg sync.WaitGroup
	results := make([]image.Image, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := l.Load(context.Background(), "a.png")
			if err != nil {
				t.Errorf("Load() error = %v", err)
				return
			}
			results[i] = img
		}(i)
	}
	wg.Wait()

	for i, img := range results {
		if img == nil {
			t.Fatalf("result %d is nil", i)
		}
		if img.Bounds().Dx() != 16 {
			t.Errorf("result %d width = %d, want 16", i, img.Bounds().Dx())
		}
	}
}
