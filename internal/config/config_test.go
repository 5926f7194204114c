package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty temp dir and restores global
// state afterwards.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	viper.Reset()
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
		viper.Reset()
		SetConfigPath("")
		Set(nil)
	})
	return dir
}

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		isolate(t)

		require.NoError(t, Init())

		c := Get()
		require.NotNil(t, c)
		assert.Equal(t, 640, c.Window.Width)
		assert.Equal(t, 480, c.Window.Height)
		assert.Equal(t, "orbital", c.Window.Scheme)
		assert.Equal(t, 30, c.Animate.FPS)
		assert.Equal(t, "0xFF336699", c.Surface.Fill)
	})

	t.Run("reads explicit config file", func(t *testing.T) {
		dir := isolate(t)

		path := filepath.Join(dir, "custom.toml")
		content := `
[window]
width = 320
height = 200
title = "custom"

[surface]
width = 100
fill = "#FF00FF00"

[logging]
log_level = "debug"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		SetConfigPath(path)

		require.NoError(t, Init())

		c := Get()
		assert.Equal(t, 320, c.Window.Width)
		assert.Equal(t, 200, c.Window.Height)
		assert.Equal(t, "custom", c.Window.Title)
		assert.Equal(t, uint32(100), c.Surface.Width)
		assert.Equal(t, uint32(0), c.Surface.Height)
		assert.Equal(t, "debug", c.Logging.LogLevel)
		assert.Equal(t, "orbital", c.Window.Scheme, "unset keys keep defaults")
	})

	t.Run("handles invalid TOML", func(t *testing.T) {
		dir := isolate(t)

		path := filepath.Join(dir, "softbuf.toml")
		require.NoError(t, os.WriteFile(path, []byte("[window\nwidth = 1"), 0644))
		SetConfigPath(path)

		assert.Error(t, Init())
	})

	t.Run("rejects invalid fill", func(t *testing.T) {
		dir := isolate(t)

		path := filepath.Join(dir, "softbuf.toml")
		require.NoError(t, os.WriteFile(path, []byte("[surface]\nfill = \"purple\"\n"), 0644))
		SetConfigPath(path)

		err := Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "surface.fill")
	})

	t.Run("environment overrides", func(t *testing.T) {
		isolate(t)
		t.Setenv("SOFTBUF_WINDOW_WIDTH", "1024")

		require.NoError(t, Init())
		assert.Equal(t, 1024, Get().Window.Width)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "softbuf.toml")
	SetConfigPath(path)

	c := DefaultConfig
	c.Window.Width = 800
	c.Window.Title = "saved"
	c.Animate.Frames = 12
	Set(&c)

	require.NoError(t, Save())
	assert.FileExists(t, path)

	viper.Reset()
	Set(nil)
	require.NoError(t, Init())

	got := Get()
	assert.Equal(t, 800, got.Window.Width)
	assert.Equal(t, "saved", got.Window.Title)
	assert.Equal(t, 12, got.Animate.Frames)
}

func TestGetConfigPath(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		dir := isolate(t)
		assert.Equal(t, filepath.Join(dir, ".config", "softbuf", "softbuf.toml"), GetConfigPath())
	})

	t.Run("override wins", func(t *testing.T) {
		isolate(t)
		SetConfigPath("/tmp/elsewhere.toml")
		assert.Equal(t, "/tmp/elsewhere.toml", GetConfigPath())
	})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0xFFFFFFFF", 0xFFFFFFFF, false},
		{"#FF336699", 0xFF336699, false},
		{" 0x10 ", 0x10, false},
		{"255", 255, false},
		{"0x1FFFFFFFF", 0, true},
		{"red", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
