package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tubeget/tubeget/internal/config"
)

// Palette is the set of colors one theme resolves to.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	Subtext   lipgloss.Color
	Border    lipgloss.Color
}

var darkPalette = Palette{
	Primary:   lipgloss.Color("#bd93f9"), // Dracula Purple
	Secondary: lipgloss.Color("#ff79c6"), // Dracula Pink
	Success:   lipgloss.Color("#50fa7b"), // Dracula Green
	Error:     lipgloss.Color("#ff5555"), // Dracula Red
	Warning:   lipgloss.Color("#ffb86c"), // Dracula Orange
	Text:      lipgloss.Color("#f8f8f2"), // Dracula Foreground
	Subtext:   lipgloss.Color("#6272a4"), // Dracula Comment
	Border:    lipgloss.Color("#44475a"), // Dracula Selection
}

var lightPalette = Palette{
	Primary:   lipgloss.Color("#6f42c1"),
	Secondary: lipgloss.Color("#d63384"),
	Success:   lipgloss.Color("#1a7f37"),
	Error:     lipgloss.Color("#cf222e"),
	Warning:   lipgloss.Color("#9a6700"),
	Text:      lipgloss.Color("#1f2328"),
	Subtext:   lipgloss.Color("#656d76"),
	Border:    lipgloss.Color("#d0d7de"),
}

// Styles bundles every lipgloss style the view renders with.
type Styles struct {
	Palette Palette

	App      lipgloss.Style
	Title    lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Subtext  lipgloss.Style
	Status   lipgloss.Style
}

// NewStyles resolves a theme setting into concrete styles. The adaptive
// theme follows the terminal background.
func NewStyles(theme int) Styles {
	p := darkPalette
	switch theme {
	case config.ThemeLight:
		p = lightPalette
	case config.ThemeDark:
		p = darkPalette
	default:
		if !termenv.HasDarkBackground() {
			p = lightPalette
		}
	}

	return Styles{
		Palette: p,

		App: lipgloss.NewStyle().
			Padding(DefaultPaddingX, 2).
			Foreground(p.Text),

		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Padding(DefaultPaddingY, DefaultPaddingX).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(DefaultPaddingY, DefaultPaddingX),

		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(DefaultPaddingY, DefaultPaddingX),

		Label: lipgloss.NewStyle().
			Foreground(p.Subtext).
			Width(10),

		Value: lipgloss.NewStyle().
			Foreground(p.Text),

		Selected: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(p.Success),

		Error: lipgloss.NewStyle().
			Foreground(p.Error),

		Warning: lipgloss.NewStyle().
			Foreground(p.Warning),

		Subtext: lipgloss.NewStyle().
			Foreground(p.Subtext),

		Status: lipgloss.NewStyle().
			Foreground(p.Subtext).
			Padding(DefaultPaddingY, DefaultPaddingX),
	}
}
