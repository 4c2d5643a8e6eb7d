package style

import "github.com/charmbracelet/lipgloss"

// Feed palette.
var (
	Base    = lipgloss.Color("#0b0b10")
	Text    = lipgloss.Color("#f4f4f5")
	Subtext = lipgloss.Color("#a1a1aa")
	Overlay = lipgloss.Color("#52525b")
	Surface = lipgloss.Color("#27272a")

	Pink   = lipgloss.Color("#ec4899")
	Violet = lipgloss.Color("#8b5cf6")
	Red    = lipgloss.Color("#f43f5e")
	Green  = lipgloss.Color("#22c55e")
	Yellow = lipgloss.Color("#eab308")
	Blue   = lipgloss.Color("#60a5fa")

	AccentColor  = Pink
	LikedColor   = Red
	SuccessColor = Green
	WarningColor = Yellow
	ErrorColor   = Red
	FaintColor   = Overlay

	BorderColor       = Surface
	ActiveBorderColor = Violet
)
