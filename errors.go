package roast

import "errors"

// Errors returned by the editor model.
var (
	// ErrEmptyCaption is returned when a caption is added with blank text.
	ErrEmptyCaption = errors.New("roast: caption text is empty")

	// ErrCaptionTooLong is returned when a caption exceeds the configured
	// number of grapheme clusters.
	ErrCaptionTooLong = errors.New("roast: caption text is too long")

	// ErrInvalidFontSize is returned for font sizes below one pixel.
	ErrInvalidFontSize = errors.New("roast: invalid font size")

	// ErrInvalidColor is returned for colors that are not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("roast: invalid color")

	// ErrUnknownImage is returned when a gallery id is not in the catalog.
	ErrUnknownImage = errors.New("roast: unknown image")

	// ErrNoImage is returned when an operation needs a displayed image and
	// none has been selected yet.
	ErrNoImage = errors.New("roast: no image selected")

	// ErrExport wraps every failure of the export bridge.
	ErrExport = errors.New("roast: export failed")

	// ErrTainted is returned by rasterizers asked to sample a cross-origin
	// background without permission to taint the output.
	ErrTainted = errors.New("roast: background image is cross-origin")
)

var errNoRasterizer = errors.New("roast: no rasterizer configured")
