package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
)

// ---------------------------------------------------------------------------
// Color Palette
// ---------------------------------------------------------------------------

// ColorPrimary is the main accent color used for titles and highlights.
var ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}

// ColorMuted is a subdued foreground color for secondary text.
var ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ColorError represents failures and error states (red).
var ColorError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// ColorHighlight is a background highlight for the selected row.
var ColorHighlight = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// levelColors gives every level a badge color. The same hex values serve
// light and dark terminals; the badge text color is picked per level to keep
// contrast.
var levelColors = map[level.Level]lipgloss.Color{
	level.Debug: lipgloss.Color("#9FA8DA"),
	level.Info:  lipgloss.Color("#81C784"),
	level.Warn:  lipgloss.Color("#FFEE58"),
	level.Error: lipgloss.Color("#E57373"),
	level.None:  lipgloss.Color("#424242"),
}

// LevelColor returns the badge color for l. Undefined levels get the None
// color.
func LevelColor(l level.Level) lipgloss.Color {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return levelColors[level.None]
}

// ---------------------------------------------------------------------------
// Theme
// ---------------------------------------------------------------------------

// Theme holds all Lipgloss styles for the config view. Width is applied at
// render time from the terminal size.
type Theme struct {
	TitleBar  lipgloss.Style
	TitleHint lipgloss.Style

	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowCursor   lipgloss.Style
	Persisted   lipgloss.Style

	LevelBadge  lipgloss.Style
	LevelMarker lipgloss.Style

	Empty     lipgloss.Style
	ErrorText lipgloss.Style
	Footer    lipgloss.Style
}

// DefaultTheme returns the default theme with adaptive colors.
func DefaultTheme() Theme {
	return Theme{
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),

		TitleHint: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C7C5FF", Dark: "#A8A5FF"}),

		Row: lipgloss.NewStyle().
			PaddingLeft(1),

		RowSelected: lipgloss.NewStyle().
			Bold(true).
			Background(ColorHighlight).
			PaddingLeft(1),

		RowCursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Persisted: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		LevelBadge: lipgloss.NewStyle().
			Padding(0, 1).
			Width(7).
			Align(lipgloss.Center),

		LevelMarker: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Empty: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(1, 2),

		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),

		Footer: lipgloss.NewStyle().
			MarginTop(1).
			PaddingLeft(1),
	}
}

// Badge renders l as a colored label. The active level is filled with its
// color; inactive ones only use it for the text.
func (t Theme) Badge(l level.Level, active bool) string {
	c := LevelColor(l)
	style := t.LevelBadge
	if !active {
		return style.Foreground(c).Render(l.String())
	}

	fg := lipgloss.Color("#000000")
	if l == level.None {
		fg = lipgloss.Color("#FFFFFF")
	}
	return style.Bold(true).Background(c).Foreground(fg).Render(l.String())
}
