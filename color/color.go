// Package color names the ANSI colors CLI output uses. The feed itself is
// styled from the style palette, which carries truecolor values.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI colors, so output follows the terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13")
)

// Brand accents of the web client.
var (
	Pink   = New("#ec4899")
	Violet = New("#8b5cf6")
)
