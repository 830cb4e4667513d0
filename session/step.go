// Package session plays scripted editing sessions against a roast.Editor.
//
// A script is a YAML document with a list of steps, each naming one editor
// control or input gesture:
//
//	steps:
//	  - op: select-image
//	    image: ice
//	  - op: wait-image
//	  - op: resize
//	    width: 800
//	    height: 600
//	  - op: add
//	    text: Melting fast
//	  - op: drag
//	    to: {x: 0, y: 0}
//	  - op: export
//
// Steps run in order on the goroutine that owns the editor. Playback stops
// at the first failing step and reports it as a *StepError.
package session

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/climateroast/roast"
)

// StepKind identifies the editor action a step performs.
type StepKind uint8

const (
	StepSelectImage StepKind = iota // Display a gallery image
	StepWaitImage                   // Wait for the displayed image to decode
	StepResize                      // Resize the viewport
	StepAdd                         // Add a caption
	StepSelect                      // Select a layer
	StepDeselect                    // Clear the selection
	StepFontSize                    // Set the font size control
	StepColor                       // Set the color control
	StepBold                        // Toggle bold
	StepItalic                      // Toggle italic
	StepDrag                        // Drag a layer with the pointer
	StepDelete                      // Delete the selected layer
	StepClear                       // Clear all layers
	StepExport                      // Download the composition

	stepKindCount
)

var stepKindNames = [...]string{
	StepSelectImage: "select-image",
	StepWaitImage:   "wait-image",
	StepResize:      "resize",
	StepAdd:         "add",
	StepSelect:      "select",
	StepDeselect:    "deselect",
	StepFontSize:    "font-size",
	StepColor:       "color",
	StepBold:        "bold",
	StepItalic:      "italic",
	StepDrag:        "drag",
	StepDelete:      "delete",
	StepClear:       "clear",
	StepExport:      "export",
}

// String returns the script name of the step kind.
func (k StepKind) String() string {
	if k < stepKindCount {
		return stepKindNames[k]
	}
	return fmt.Sprintf("StepKind(%d)", k)
}

// ParseStepKind returns the step kind with the given script name.
func ParseStepKind(name string) (StepKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range stepKindNames {
		if n == name {
			return StepKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown op %q", ErrInvalidScript, name)
}

// UnmarshalYAML decodes a step kind from its script name.
func (k *StepKind) UnmarshalYAML(n *yaml.Node) error {
	var name string
	if err := n.Decode(&name); err != nil {
		return err
	}
	kind, err := ParseStepKind(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*k = kind
	return nil
}

// MarshalYAML encodes a step kind as its script name.
func (k StepKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Point is a client-coordinate position in a script.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) client() roast.Point { return roast.Pt(p.X, p.Y) }

// Step is one scripted action. Only the fields its kind uses are read.
type Step struct {
	Op StepKind `yaml:"op"`

	// Image is a catalog id, or a fuzzy query over ids and alt text
	// (select-image).
	Image string `yaml:"image,omitempty"`

	// Width and Height size the viewport (resize).
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`

	// Text is the caption (add).
	Text string `yaml:"text,omitempty"`

	// Layer is a 1-based index into the layers, bottom to top (select,
	// drag). Zero in a drag means the selected layer.
	Layer int `yaml:"layer,omitempty"`

	// Size is the font size in pixels (font-size).
	Size int `yaml:"size,omitempty"`

	// Color is a #rgb or #rrggbb color (color).
	Color string `yaml:"color,omitempty"`

	// From is where the drag grabs the layer; the layer's center when nil.
	From *Point `yaml:"from,omitempty"`

	// To is where the drag releases (drag).
	To *Point `yaml:"to,omitempty"`

	// Moves is the number of pointer moves between grab and release.
	Moves int `yaml:"moves,omitempty"`

	// Touch drags with a touch pointer instead of the mouse.
	Touch bool `yaml:"touch,omitempty"`
}

// validate checks the fields a step needs before it runs.
func (s Step) validate() error {
	switch s.Op {
	case StepSelectImage:
		if strings.TrimSpace(s.Image) == "" {
			return fmt.Errorf("%w: %s needs an image", ErrInvalidScript, s.Op)
		}
	case StepResize:
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: %s needs a positive width and height", ErrInvalidScript, s.Op)
		}
	case StepSelect:
		if s.Layer < 1 {
			return fmt.Errorf("%w: %s needs a layer index starting at 1", ErrInvalidScript, s.Op)
		}
	case StepDrag:
		if s.To == nil {
			return fmt.Errorf("%w: %s needs a destination", ErrInvalidScript, s.Op)
		}
		if s.Layer < 0 || s.Moves < 0 {
			return fmt.Errorf("%w: %s has a negative layer or move count", ErrInvalidScript, s.Op)
		}
	}
	return nil
}
