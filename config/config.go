// Package config loads the command line tool's settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"mathfig/export"
	"mathfig/render"
)

// Config holds the settings a flag can also set. Zero values in the file
// keep the defaults.
type Config struct {
	Format   string  `json:"format" yaml:"format"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Margin   float64 `json:"margin" yaml:"margin"`
	FontSize float64 `json:"fontSize" yaml:"fontSize"`
	OutDir   string  `json:"outDir" yaml:"outDir"`
	// Validate runs the drawing checks after every render.
	Validate bool `json:"validate" yaml:"validate"`
	// Strict turns label overlaps into errors.
	Strict bool `json:"strict" yaml:"strict"`
	// Color adds ANSI colours to ascii output.
	Color bool `json:"color" yaml:"color"`
}

// Default returns the built-in settings.
func Default() Config {
	o := render.DefaultOptions()
	return Config{
		Format:   string(export.FormatSVG),
		Width:    o.Width,
		Height:   o.Height,
		Margin:   o.Margin,
		FontSize: o.FontSize,
		OutDir:   ".",
	}
}

// Load reads a YAML settings file over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over the defaults. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file Config
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.merge(file)
	if err := cfg.Check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Margin != 0 {
		c.Margin = o.Margin
	}
	if o.FontSize != 0 {
		c.FontSize = o.FontSize
	}
	if o.OutDir != "" {
		c.OutDir = o.OutDir
	}
	c.Validate = c.Validate || o.Validate
	c.Strict = c.Strict || o.Strict
	c.Color = c.Color || o.Color
}

// Check reports settings that cannot produce a drawing.
func (c Config) Check() error {
	if _, err := export.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: surface must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.Margin < 0 || 2*c.Margin >= c.Width || 2*c.Margin >= c.Height {
		return fmt.Errorf("config: margin %g does not fit a %gx%g surface", c.Margin, c.Width, c.Height)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("config: font size must be positive, got %g", c.FontSize)
	}
	return nil
}

// Options returns the engine options for these settings.
func (c Config) Options() []render.Option {
	return []render.Option{
		render.WithSurface(c.Width, c.Height),
		render.WithMargin(c.Margin),
		render.WithFontSize(c.FontSize),
	}
}
