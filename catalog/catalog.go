// Package catalog holds the static list of background images the gallery
// offers.
//
// A catalog is a YAML document:
//
//	images:
//	  - id: factory
//	    url: photos/factory.jpg
//	    alt: Factory smoke and pollution
//
// URLs are opaque to this package apart from CrossOrigin; the loader decides
// how to resolve them.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is returned for catalogs that fail validation.
var ErrInvalid = errors.New("catalog: invalid catalog")

// Image is a selectable background photo.
type Image struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
	Alt string `yaml:"alt"`
}

// CrossOrigin reports whether the image is served from another origin.
// Relative paths and file URLs are same-origin; http and https URLs are not.
func (i Image) CrossOrigin() bool {
	u, err := url.Parse(i.URL)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	return false
}

// Catalog is an ordered list of images. The first image is the one shown
// initially.
type Catalog struct {
	Images []Image `yaml:"images"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default catalog: %v", err))
	}
	return c
}

// Validate checks that the catalog has at least one image and that every
// image has a unique id and a url.
func (c *Catalog) Validate() error {
	if len(c.Images) == 0 {
		return fmt.Errorf("%w: no images", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Images))
	for i, img := range c.Images {
		if img.ID == "" {
			return fmt.Errorf("%w: image %d has no id", ErrInvalid, i)
		}
		if img.URL == "" {
			return fmt.Errorf("%w: image %q has no url", ErrInvalid, img.ID)
		}
		if seen[img.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalid, img.ID)
		}
		seen[img.ID] = true
	}
	return nil
}

// Len returns the number of images.
func (c *Catalog) Len() int { return len(c.Images) }

// Lookup returns the image with the given id.
func (c *Catalog) Lookup(id string) (Image, bool) {
	for _, img := range c.Images {
		if img.ID == id {
			return img, true
		}
	}
	return Image{}, false
}

// searchSource exposes "id alt" strings to the fuzzy matcher.
type searchSource []Image

func (s searchSource) String(i int) string { return s[i].ID + " " + s[i].Alt }
func (s searchSource) Len() int            { return len(s) }

// Find returns the images matching query, best match first. An exact id
// match always comes first.
func (c *Catalog) Find(query string) []Image {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	var out []Image
	exact, hasExact := c.Lookup(query)
	if hasExact {
		out = append(out, exact)
	}
	for _, m := range fuzzy.FindFrom(query, searchSource(c.Images)) {
		img := c.Images[m.Index]
		if hasExact && img.ID == exact.ID {
			continue
		}
		out = append(out, img)
	}
	return out
}
