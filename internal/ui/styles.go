// Package ui provides consistent styling and components for the softbuf CLI
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary   = lipgloss.Color("39")  // Bright blue
	ColorSecondary = lipgloss.Color("205") // Pink/magenta
	ColorSuccess   = lipgloss.Color("82")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("86")  // Cyan

	ColorText   = lipgloss.Color("252") // Light gray
	ColorSubtle = lipgloss.Color("241") // Medium gray
	ColorMuted  = lipgloss.Color("238") // Dark gray
)

// Base styles - building blocks for other styles
var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Width(10)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ControlKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconFrame   = "▣"
)

// FormatHeader renders a title followed by a separator line
func FormatHeader(title string) string {
	return HeaderStyle.Render(IconFrame+" "+title) + "\n" + CreateSeparator(40, "─")
}

// FormatField renders one "label  value" line
func FormatField(label, value string) string {
	return LabelStyle.Render(label) + " " + TextStyle.Render(value)
}

// FormatSize renders a width x height pair
func FormatSize(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatPixel renders a packed pixel value
func FormatPixel(c uint32) string {
	return fmt.Sprintf("0x%08X", c)
}

func FormatControl(key, desc string) string {
	return ControlKeyStyle.Render(key) + " - " + SubtleStyle.Render(desc)
}

func FormatResult(success bool, message string) string {
	if success {
		return SuccessStyle.Render(IconSuccess + " " + message)
	}
	return ErrorStyle.Render(IconError + " " + message)
}

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 40
	}
	if char == "" {
		char = "─"
	}

	return lipgloss.NewStyle().
		Foreground(ColorSubtle).
		Render(strings.Repeat(char, width))
}
