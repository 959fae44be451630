package render

import (
	"io"
	"log/slog"

	"mathfig/diagram"
	"mathfig/layout"
)

// Options configures an Engine.
type Options struct {
	Width, Height float64
	Margin        float64
	FontSize      float64
	Logger        *slog.Logger
	Measurer      diagram.Measurer
	// Cache, when set, serves repeated requests without rebuilding them.
	Cache *Cache
}

// DefaultOptions returns a 400×300 surface with a 36 unit margin and 13
// unit labels.
func DefaultOptions() Options {
	return Options{
		Width:    400,
		Height:   300,
		Margin:   36,
		FontSize: 13,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Measurer: layout.DefaultMeasurer(),
	}
}

// Option adjusts Options.
type Option func(*Options)

// WithSurface sets the drawing surface size.
func WithSurface(width, height float64) Option {
	return func(o *Options) {
		o.Width, o.Height = width, height
	}
}

// WithMargin sets the blank border kept around the scene.
func WithMargin(margin float64) Option {
	return func(o *Options) { o.Margin = margin }
}

// WithFontSize sets the default label size.
func WithFontSize(size float64) Option {
	return func(o *Options) { o.FontSize = size }
}

// WithLogger sets the logger for debug records. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMeasurer replaces the text measurer used for label layout.
func WithMeasurer(m diagram.Measurer) Option {
	return func(o *Options) {
		if m != nil {
			o.Measurer = m
		}
	}
}

func (o Options) viewport() layout.Viewport {
	return layout.Viewport{Width: o.Width, Height: o.Height, Margin: o.Margin, FontSize: o.FontSize}
}

// WithCache makes the engine reuse results for identical requests.
func WithCache(c *Cache) Option {
	return func(o *Options) { o.Cache = c }
}
