// Package styles holds the overlay's lipgloss styling.
package styles

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// SpotifyGreen is used for the playing indicator regardless of theme.
var SpotifyGreen = lipgloss.Color("#1DB954")

// Theme bundles the styles the overlay renders with.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	ErrorText lipgloss.Style
	Panel     lipgloss.Style
}

// New builds a theme by name. "light" maps to catppuccin Latte; anything else
// gets Mocha.
func New(name string) Theme {
	var flavor catppuccin.Flavour = catppuccin.Mocha
	if name == "light" {
		flavor = catppuccin.Latte
	}

	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(flavor.Text().Hex)),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext0().Hex)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Overlay1().Hex)),

		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Overlay0().Hex)),

		Playing: lipgloss.NewStyle().
			Foreground(SpotifyGreen),

		Paused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Yellow().Hex)),

		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Red().Hex)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(flavor.Surface2().Hex)).
			Padding(0, 1),
	}
}
