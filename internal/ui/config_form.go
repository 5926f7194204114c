package ui

import (
	"fmt"
	"strconv"

	"github.com/bnema/softbuf/internal/config"
	"github.com/charmbracelet/huh"
)

// ConfigFormValues holds the editable config fields as the strings the form
// inputs bind to.
type ConfigFormValues struct {
	BufferPath string
	Width      string
	Height     string
	Title      string
	Fill       string
	FPS        string
	LogLevel   string
}

// FormValuesFrom copies c into form values.
func FormValuesFrom(c *config.Config) *ConfigFormValues {
	return &ConfigFormValues{
		BufferPath: c.Window.BufferPath,
		Width:      strconv.Itoa(c.Window.Width),
		Height:     strconv.Itoa(c.Window.Height),
		Title:      c.Window.Title,
		Fill:       c.Surface.Fill,
		FPS:        strconv.Itoa(c.Animate.FPS),
		LogLevel:   c.Logging.LogLevel,
	}
}

// Apply validates v and writes it into c.
func (v *ConfigFormValues) Apply(c *config.Config) error {
	width, err := parseNonNegative(v.Width)
	if err != nil {
		return fmt.Errorf("window width: %w", err)
	}
	height, err := parseNonNegative(v.Height)
	if err != nil {
		return fmt.Errorf("window height: %w", err)
	}
	fps, err := parseNonNegative(v.FPS)
	if err != nil || fps == 0 {
		return fmt.Errorf("fps must be a positive integer")
	}
	if _, err := config.ParseColor(v.Fill); err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	c.Window.BufferPath = v.BufferPath
	c.Window.Width = width
	c.Window.Height = height
	c.Window.Title = v.Title
	c.Surface.Fill = v.Fill
	c.Animate.FPS = fps
	c.Logging.LogLevel = v.LogLevel
	return nil
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	return n, nil
}

func validateNonNegative(s string) error {
	_, err := parseNonNegative(s)
	return err
}

func validateColor(s string) error {
	_, err := config.ParseColor(s)
	return err
}

// NewConfigForm builds the interactive form for config init.
func NewConfigForm(v *ConfigFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Window buffer file").
				Value(&v.BufferPath),
			huh.NewInput().
				Title("Window width").
				Value(&v.Width).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Window height").
				Value(&v.Height).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Window title").
				Value(&v.Title),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Fill color").
				Description("Packed pixel, e.g. 0xFF336699").
				Value(&v.Fill).
				Validate(validateColor),
			huh.NewInput().
				Title("Animation FPS").
				Value(&v.FPS).
				Validate(validateNonNegative),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("from LOG_LEVEL", ""),
					huh.NewOption("debug", "debug"),
					huh.NewOption("info", "info"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&v.LogLevel),
		),
	)
}
