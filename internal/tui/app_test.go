package tui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logger"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logging"
	"github.com/AbdelazizMoustafa10m/tealog/internal/storage"
	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

func newTestPool(t *testing.T, store storage.Store) *logger.Pool {
	t.Helper()
	var out bytes.Buffer
	return logger.New(
		logger.WithStore(store),
		logger.WithWriter(writer.NewConsole(&out, &out, writer.WithNoColor(true))),
		logger.WithLogger(logging.NewWithOutput("pool", &bytes.Buffer{})),
	)
}

// applyMsg sends msg to the model and returns the updated App.
func applyMsg(t *testing.T, app App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	updated, ok := m.(App)
	require.True(t, ok, "Update must return an App")
	return updated, cmd
}

func levelOf(t *testing.T, p *logger.Pool, name string) level.Level {
	t.Helper()
	l, err := p.GetByName(name)
	require.NoError(t, err)
	return l.Level()
}

func TestNewApp_LoadsPersistedLoggers(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	require.NoError(t, store.Set(logger.Key("net"), "debug"))

	p := newTestPool(t, store)
	p.MustGet("db")

	app := NewApp(p, AppConfig{})
	assert.Equal(t, []string{"db", "net"}, app.Names())
	assert.Equal(t, "db", app.Selected())
	assert.Equal(t, level.Debug, levelOf(t, p, "net"))
	assert.NoError(t, app.Err())
}

func TestApp_Navigation(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, storage.NewMemory())
	for _, name := range []string{"c", "a", "b"} {
		p.MustGet(name)
	}
	app := NewApp(p, AppConfig{})

	app, _ = applyMsg(t, app, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "a", app.Selected(), "cursor stays at the top")

	app, _ = applyMsg(t, app, tea.KeyMsg{Type: tea.KeyDown})
	app, _ = applyMsg(t, app, runeKey('j'))
	assert.Equal(t, "c", app.Selected())

	app, _ = applyMsg(t, app, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "c", app.Selected(), "cursor stays at the bottom")

	app, _ = applyMsg(t, app, runeKey('k'))
	assert.Equal(t, "b", app.Selected())
}

func TestApp_LevelKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start level.Level
		msg   tea.KeyMsg
		want  level.Level
	}{
		{"left lowers", level.Warn, tea.KeyMsg{Type: tea.KeyLeft}, level.Info},
		{"left stops at debug", level.Debug, tea.KeyMsg{Type: tea.KeyLeft}, level.Debug},
		{"right raises", level.Warn, tea.KeyMsg{Type: tea.KeyRight}, level.Error},
		{"right stops at none", level.None, tea.KeyMsg{Type: tea.KeyRight}, level.None},
		{"h lowers", level.Error, runeKey('h'), level.Warn},
		{"l raises", level.Error, runeKey('l'), level.None},
		{"digit 0", level.Warn, runeKey('0'), level.Debug},
		{"digit 4", level.Warn, runeKey('4'), level.None},
		{"reset", level.Debug, runeKey('r'), level.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestPool(t, storage.NewMemory())
			require.NoError(t, p.MustGet("db").SetLevel(tt.start))

			app := NewApp(p, AppConfig{})
			app, cmd := applyMsg(t, app, tt.msg)

			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, levelOf(t, p, "db"))
			assert.NoError(t, app.Err())
		})
	}
}

func TestApp_LevelChangesArePersisted(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	p := newTestPool(t, store)
	p.MustGet("db")

	app := NewApp(p, AppConfig{})
	assert.False(t, app.persisted["db"])

	app, _ = applyMsg(t, app, runeKey('1'))
	assert.Equal(t, []string{"db"}, p.Persisted())
	assert.True(t, app.persisted["db"], "marker follows the store")

	app, _ = applyMsg(t, app, runeKey('r'))
	assert.Empty(t, p.Persisted())
	assert.False(t, app.persisted["db"])
}

func TestApp_KeysWithoutLoggers(t *testing.T) {
	t.Parallel()

	app := NewApp(newTestPool(t, storage.NewMemory()), AppConfig{})
	assert.Equal(t, "", app.Selected())

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyDown},
		{Type: tea.KeyLeft},
		runeKey('2'),
		runeKey('r'),
	} {
		app, _ = applyMsg(t, app, msg)
	}
	assert.NoError(t, app.Err())
	assert.Contains(t, app.View(), "No loggers yet")
}

func TestApp_Quit(t *testing.T) {
	t.Parallel()

	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		app := NewApp(newTestPool(t, storage.NewMemory()), AppConfig{})
		app, cmd := applyMsg(t, app, msg)

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, app.View())
	}
}

func TestApp_HelpToggle(t *testing.T) {
	t.Parallel()

	app := NewApp(newTestPool(t, storage.NewMemory()), AppConfig{})
	assert.NotContains(t, app.View(), "reset to warn")

	app, _ = applyMsg(t, app, runeKey('?'))
	assert.Contains(t, app.View(), "reset to warn")

	app, _ = applyMsg(t, app, runeKey('?'))
	assert.NotContains(t, app.View(), "reset to warn")
}

func TestApp_View(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, storage.NewMemory())
	p.MustGet("db")
	p.MustGet("network")

	app := NewApp(p, AppConfig{Version: "v1.2.3", StoreLabel: "memory"})
	app, _ = applyMsg(t, app, tea.WindowSizeMsg{Width: 200, Height: 30})

	view := app.View()
	assert.Contains(t, view, "tealog v1.2.3")
	assert.Contains(t, view, "memory")
	assert.Contains(t, view, "db")
	assert.Contains(t, view, "network")
	for _, lvl := range level.All() {
		assert.Contains(t, view, lvl.String())
	}
	assert.Contains(t, view, "quit")
}

func TestApp_InitReturnsNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, NewApp(newTestPool(t, storage.NewMemory()), AppConfig{}).Init())
}
