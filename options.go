package roast

// Option configures an Editor during creation.
//
// Example:
//
//	ed, err := roast.New(catalog.Default(),
//	    roast.WithLoader(loader.New("photos")),
//	    roast.WithRasterizer(rz),
//	    roast.WithSink(roast.DirSink("out")),
//	)
type Option func(*options)

// options holds optional configuration for Editor creation.
type options struct {
	loader     Loader
	rasterizer Rasterizer
	measurer   Measurer
	sink       Sink
	notifier   Notifier
	loop       *Loop
	dpr        float64
	filename   string
	style      Style
	maxCaption int
}

// defaultMaxCaption is the default caption length limit in grapheme
// clusters.
const defaultMaxCaption = 200

// defaultOptions returns the default editor options.
func defaultOptions() options {
	return options{
		sink:       DirSink("."),
		notifier:   logNotifier{},
		dpr:        1,
		filename:   DefaultFilename,
		style:      DefaultStyle(),
		maxCaption: defaultMaxCaption,
	}
}

// WithLoader sets the image loader used by the gallery.
func WithLoader(l Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithRasterizer sets the rasterizer used for export. If the rasterizer
// also implements Measurer and no measurer was set, it measures captions
// too.
func WithRasterizer(r Rasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}

// WithMeasurer sets how caption boxes are measured for hit testing and
// dragging.
func WithMeasurer(m Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}

// WithSink sets where exported files go. The default is the working
// directory.
func WithSink(s Sink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithNotifier sets the alert and confirmation UI.
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithLoop sets the event loop. By default the editor creates its own.
func WithLoop(l *Loop) Option {
	return func(o *options) {
		o.loop = l
	}
}

// WithDevicePixelRatio sets the display's device pixel ratio, which scales
// exports (capped at 2).
func WithDevicePixelRatio(dpr float64) Option {
	return func(o *options) {
		o.dpr = dpr
	}
}

// WithFilename sets the name of exported files.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithDefaultStyle sets the initial state of the style controls.
func WithDefaultStyle(s Style) Option {
	return func(o *options) {
		o.style = s
	}
}

// WithMaxCaptionLength sets the caption limit in grapheme clusters.
// Zero or less disables the limit.
func WithMaxCaptionLength(n int) Option {
	return func(o *options) {
		o.maxCaption = n
	}
}
