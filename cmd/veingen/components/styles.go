package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/orevein/services/vein"
)

// Color definitions
var (
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")

	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Channel colors
	AlphaColor = lipgloss.Color("#C0C0C0")
	RedColor   = lipgloss.Color("#F25D94")
	GreenColor = lipgloss.Color("#04B575")
	BlueColor  = lipgloss.Color("#1E90FF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Align(lipgloss.Right).
				Width(4)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Align(lipgloss.Right).
			Width(4)

	// Culled cells are dimmed
	CulledCellStyle = TableCellStyle.
			Foreground(DarkGray)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true)

	// Grid styles (for heatmaps)
	GridCellStyle = lipgloss.NewStyle().
			Width(2).
			Height(1)
)

// ChannelColor returns the accent color for a channel.
func ChannelColor(ch vein.Channel) lipgloss.Color {
	switch ch {
	case vein.ChannelA:
		return AlphaColor
	case vein.ChannelR:
		return RedColor
	case vein.ChannelG:
		return GreenColor
	default:
		return BlueColor
	}
}

// ShadeColor renders v in the hue of ch.
func ShadeColor(ch vein.Channel, v uint8) lipgloss.Color {
	switch ch {
	case vein.ChannelR:
		return lipgloss.Color(fmt.Sprintf("#%02x0000", v))
	case vein.ChannelG:
		return lipgloss.Color(fmt.Sprintf("#00%02x00", v))
	case vein.ChannelB:
		return lipgloss.Color(fmt.Sprintf("#0000%02x", v))
	default:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v))
	}
}
