// Package tui implements the interactive level editor behind
// `tealog configure`: one row per logger, with keys to move between rows
// and change the selected logger's level.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logger"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logging"
)

// LoggerSource is the part of a logger.Pool the view needs.
type LoggerSource interface {
	GetByName(name string) (*logger.Logger, error)
	GetAll() []*logger.Logger
	Persisted() []string
}

var _ LoggerSource = (*logger.Pool)(nil)

// AppConfig holds configuration for the TUI application.
type AppConfig struct {
	// Version is the tealog version shown in the title bar.
	Version string
	// StoreLabel describes where levels are persisted, e.g. "file .tealog/levels.json".
	StoreLabel string
}

// App is the Bubble Tea model of the config view.
type App struct {
	config AppConfig
	pool   LoggerSource
	theme  Theme
	keys   KeyMap
	help   help.Model

	names     []string
	persisted map[string]bool
	cursor    int
	err       error

	width    int
	quitting bool
}

// NewApp builds the view over pool. Loggers that only exist in the store
// are loaded so their restored level can be shown.
func NewApp(pool LoggerSource, cfg AppConfig) App {
	a := App{
		config: cfg,
		pool:   pool,
		theme:  DefaultTheme(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	a.refresh()
	return a
}

// refresh rebuilds the sorted row list from the pool and the store.
func (a *App) refresh() {
	persisted := a.pool.Persisted()
	a.persisted = make(map[string]bool, len(persisted))
	for _, name := range persisted {
		a.persisted[name] = true
		if _, err := a.pool.GetByName(name); err != nil {
			a.err = err
		}
	}

	all := a.pool.GetAll()
	a.names = make([]string, 0, len(all))
	for _, l := range all {
		a.names = append(a.names, l.Name())
	}
	sort.Strings(a.names)

	if a.cursor >= len(a.names) {
		a.cursor = max(len(a.names)-1, 0)
	}
}

// Selected returns the name of the logger under the cursor, or "" when
// there are none.
func (a App) Selected() string {
	if len(a.names) == 0 {
		return ""
	}
	return a.names[a.cursor]
}

// Names returns the row names in display order.
func (a App) Names() []string {
	return a.names
}

// Err returns the last error from a level change, if any.
func (a App) Err() error {
	return a.err
}

// Init returns nil; bubbletea sends a WindowSizeMsg on startup.
func (a App) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and key presses.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll

	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}

	case key.Matches(m, a.keys.Lower):
		if cur, ok := a.currentLevel(); ok && cur > level.Debug {
			a.setLevel(cur - 1)
		}

	case key.Matches(m, a.keys.Raise):
		if cur, ok := a.currentLevel(); ok && cur < level.None {
			a.setLevel(cur + 1)
		}

	case key.Matches(m, a.keys.Set):
		n, err := strconv.Atoi(m.String())
		if err != nil {
			return a, nil
		}
		if lvl, err := level.Of(n); err == nil {
			a.setLevel(lvl)
		}

	case key.Matches(m, a.keys.Reset):
		a.setLevel(level.Default)
	}

	return a, nil
}

func (a App) currentLevel() (level.Level, bool) {
	name := a.Selected()
	if name == "" {
		return 0, false
	}
	l, err := a.pool.GetByName(name)
	if err != nil {
		return 0, false
	}
	return l.Level(), true
}

func (a *App) setLevel(lvl level.Level) {
	name := a.Selected()
	if name == "" {
		return
	}

	a.err = nil
	l, err := a.pool.GetByName(name)
	if err == nil {
		err = l.SetLevel(lvl)
	}
	if err != nil {
		a.err = fmt.Errorf("setting %s to %s: %w", name, lvl, err)
	}

	// The persisted marker follows the store, which SetLevel just updated.
	a.refresh()
}

// View renders the title bar, the logger rows and the key help.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(a.renderTitleBar())
	sb.WriteString("\n")

	if len(a.names) == 0 {
		sb.WriteString(a.theme.Empty.Render("No loggers yet. Run `tealog set <name> <level>` or `tealog demo` first."))
		sb.WriteString("\n")
	}

	width := 0
	for _, name := range a.names {
		width = max(width, lipgloss.Width(name))
	}
	for i, name := range a.names {
		sb.WriteString(a.renderRow(name, i == a.cursor, width))
		sb.WriteString("\n")
	}

	if a.err != nil {
		sb.WriteString(a.theme.Row.Render(a.theme.ErrorText.Render(a.err.Error())))
		sb.WriteString("\n")
	}

	sb.WriteString(a.theme.Footer.Render(a.help.View(a.keys)))
	return sb.String()
}

func (a App) renderTitleBar() string {
	title := "tealog"
	if a.config.Version != "" {
		title += " " + a.config.Version
	}
	title += " · levels"
	if a.config.StoreLabel != "" {
		title += "  " + a.theme.TitleHint.Render(a.config.StoreLabel)
	}

	style := a.theme.TitleBar
	if a.width > 0 {
		style = style.Width(a.width)
	}
	return style.Render(title)
}

func (a App) renderRow(name string, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = a.theme.RowCursor.Render("› ")
	}

	current := level.Default
	if l, err := a.pool.GetByName(name); err == nil {
		current = l.Level()
	}

	badges := make([]string, 0, len(level.All()))
	for _, lvl := range level.All() {
		badges = append(badges, a.theme.Badge(lvl, lvl == current))
	}

	marker := " "
	if a.persisted[name] {
		marker = a.theme.Persisted.Render("•")
	}

	padded := name + strings.Repeat(" ", width-lipgloss.Width(name))
	row := cursor + padded + " " + marker + " " + strings.Join(badges, "")

	if selected {
		return a.theme.RowSelected.Render(row)
	}
	return a.theme.Row.Render(row)
}

// RunTUI runs the config view full-screen until the user quits.
func RunTUI(pool LoggerSource, cfg AppConfig) error {
	logging.New("tui").Debug("starting config view", "version", cfg.Version, "store", cfg.StoreLabel)

	p := tea.NewProgram(NewApp(pool, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
