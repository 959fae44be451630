package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathfig/render"
)

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{Format: "svg", Width: 400, Height: 300, Margin: 36, FontSize: 13, OutDir: "."}, cfg)
	assert.NoError(t, cfg.Check())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: png\nwidth: 800\nvalidate: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 800.0, cfg.Width)
	assert.Equal(t, 300.0, cfg.Height, "unset keys keep defaults")
	assert.True(t, cfg.Validate)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "colour: true\n",
		"bad format":     "format: gif\n",
		"bad type":       "width: wide\n",
		"huge margin":    "margin: 200\n",
		"negative width": "width: -5\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.Margin = 640, 20
	o := render.DefaultOptions()
	for _, opt := range cfg.Options() {
		opt(&o)
	}
	assert.Equal(t, 640.0, o.Width)
	assert.Equal(t, 20.0, o.Margin)
	assert.Equal(t, 13.0, o.FontSize)
}
