// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Window the tools present into
	Window WindowConfig `mapstructure:"window"`

	// Client-side surface settings
	Surface SurfaceConfig `mapstructure:"surface"`

	// Frame loop settings for the animate command
	Animate AnimateConfig `mapstructure:"animate"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// WindowConfig describes the file-backed window
type WindowConfig struct {
	BufferPath string `mapstructure:"buffer_path"` // Framebuffer file
	Scheme     string `mapstructure:"scheme"`
	X          int    `mapstructure:"x"`
	Y          int    `mapstructure:"y"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Title      string `mapstructure:"title"`
}

// SurfaceConfig contains the client-requested frame size and fill color
type SurfaceConfig struct {
	Width  uint32 `mapstructure:"width"`  // 0 means use the window width
	Height uint32 `mapstructure:"height"` // 0 means use the window height
	Fill   string `mapstructure:"fill"`   // Packed 0xAARRGGBB value
}

// AnimateConfig contains frame loop settings
type AnimateConfig struct {
	FPS    int `mapstructure:"fps"`
	Frames int `mapstructure:"frames"` // 0 runs until quit
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Window: WindowConfig{
			BufferPath: filepath.Join(os.TempDir(), "softbuf.buf"),
			Scheme:     "orbital",
			Width:      640,
			Height:     480,
			Title:      "softbuf",
		},
		Surface: SurfaceConfig{
			Fill: "0xFF336699",
		},
		Animate: AnimateConfig{
			FPS: 30,
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("softbuf")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "softbuf"))
		}
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "softbuf"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("SOFTBUF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("window.buffer_path", DefaultConfig.Window.BufferPath)
	viper.SetDefault("window.scheme", DefaultConfig.Window.Scheme)
	viper.SetDefault("window.x", DefaultConfig.Window.X)
	viper.SetDefault("window.y", DefaultConfig.Window.Y)
	viper.SetDefault("window.width", DefaultConfig.Window.Width)
	viper.SetDefault("window.height", DefaultConfig.Window.Height)
	viper.SetDefault("window.title", DefaultConfig.Window.Title)

	viper.SetDefault("surface.width", DefaultConfig.Surface.Width)
	viper.SetDefault("surface.height", DefaultConfig.Surface.Height)
	viper.SetDefault("surface.fill", DefaultConfig.Surface.Fill)

	viper.SetDefault("animate.fps", DefaultConfig.Animate.FPS)
	viper.SetDefault("animate.frames", DefaultConfig.Animate.Frames)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	return nil
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseColor(c.Surface.Fill); err != nil {
		return fmt.Errorf("invalid surface.fill: %w", err)
	}
	if c.Animate.FPS <= 0 {
		return fmt.Errorf("animate.fps must be positive, got %d", c.Animate.FPS)
	}
	return nil
}

// ParseColor parses a packed 32-bit pixel value. Accepts 0x-prefixed hex,
// #-prefixed hex or decimal.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		s = "0x" + rest
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	store(Get())

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// store copies c into viper key by key so the file uses the mapstructure names
func store(c *Config) {
	viper.Set("window.buffer_path", c.Window.BufferPath)
	viper.Set("window.scheme", c.Window.Scheme)
	viper.Set("window.x", c.Window.X)
	viper.Set("window.y", c.Window.Y)
	viper.Set("window.width", c.Window.Width)
	viper.Set("window.height", c.Window.Height)
	viper.Set("window.title", c.Window.Title)

	viper.Set("surface.width", c.Surface.Width)
	viper.Set("surface.height", c.Surface.Height)
	viper.Set("surface.fill", c.Surface.Fill)

	viper.Set("animate.fps", c.Animate.FPS)
	viper.Set("animate.frames", c.Animate.Frames)

	viper.Set("logging.log_level", c.Logging.LogLevel)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "softbuf", "softbuf.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "softbuf.toml"
	}

	return filepath.Join(home, ".config", "softbuf", "softbuf.toml")
}
