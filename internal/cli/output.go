package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/tui"
)

var styleMuted = lipgloss.NewStyle().Foreground(tui.ColorMuted)

// renderLevel colors a level name with its config view color. Names that
// are not levels are returned unstyled.
func renderLevel(name string) string {
	lvl, err := level.Parse(name)
	if err != nil {
		return name
	}
	return lipgloss.NewStyle().Foreground(tui.LevelColor(lvl)).Render(name)
}
