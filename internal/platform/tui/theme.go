package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
)

// Theme contains all configurable visual styles for PixelFill.
type Theme struct {
	// Grid cells. Layer colours come from the level; Palette is used for
	// layers the level gives no hex colour.
	Palette []lipgloss.Color
	Hidden  lipgloss.Style
	Empty   lipgloss.Style
	Hit     lipgloss.Style // Applied on top of the layer colour for cells hit this tick

	// Track styles
	TrackEmpty   lipgloss.Style
	TrackCorner  lipgloss.Style
	TrackShooter lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	Notice       lipgloss.Style

	// Lane and holding panel
	PanelLabel lipgloss.Style
	PanelDim   lipgloss.Style

	// Overlay styles
	OverlayWon  lipgloss.Style
	OverlayLost lipgloss.Style
	OverlayText lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	ignoreLevelColors bool
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: []lipgloss.Color{"205", "51", "46", "226", "135"},
		Hidden:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Empty:   lipgloss.NewStyle(),
		Hit:     lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236")),

		TrackEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		TrackCorner:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		TrackShooter: lipgloss.NewStyle().Bold(true),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Notice:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Italic(true),

		PanelLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		PanelDim:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		OverlayWon: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("46")).
			Foreground(lipgloss.Color("46")).
			Bold(true).
			Padding(0, 2),
		OverlayLost: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 2),
		OverlayText: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme that ignores level colours.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Palette = []lipgloss.Color{"255", "250", "245", "240", "235"}
	theme.ignoreLevelColors = true
	return theme
}

// ParseTheme returns the theme with the given name; unknown names get the default.
func ParseTheme(name string) Theme {
	if name == "mono" || name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// Layer returns the foreground style of a layer in a level.
func (t Theme) Layer(l *core.Level, layer core.LayerID) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.layerColor(l, layer))
}

func (t Theme) layerColor(l *core.Level, layer core.LayerID) lipgloss.Color {
	if !t.ignoreLevelColors && l != nil {
		if cc, ok := l.Colors[layer]; ok && cc.Hex != "" {
			return lipgloss.Color(cc.Hex)
		}
	}
	if len(t.Palette) == 0 || layer < 1 {
		return lipgloss.Color("255")
	}
	return t.Palette[int(layer-1)%len(t.Palette)]
}
