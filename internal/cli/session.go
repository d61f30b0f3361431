package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/config"
	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logger"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logging"
	"github.com/AbdelazizMoustafa10m/tealog/internal/metrics"
	"github.com/AbdelazizMoustafa10m/tealog/internal/storage"
	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

// session is the pool a command works on, built from the resolved config.
type session struct {
	resolved *config.ResolvedConfig
	store    storage.Store
	pool     *logger.Pool
}

// cliOverrides collects the global flags that were set explicitly.
func cliOverrides(cmd *cobra.Command) *config.CLIOverrides {
	o := &config.CLIOverrides{}
	if cmd.Flags().Changed("store") {
		o.Store = &flagStore
	}
	if cmd.Flags().Changed("store-path") {
		o.StorePath = &flagStorePath
	}
	if cmd.Flags().Changed("writer") {
		o.Writer = &flagWriter
	}
	if flagNoColor {
		noColor := true
		o.NoColor = &noColor
	}
	return o
}

// openSession resolves the configuration, opens the configured store and
// builds a Pool over it. A non-nil collector is wired into the pool. The
// caller must Close the session.
func openSession(cmd *cobra.Command, collector *metrics.Collector) (*session, error) {
	resolved, _, err := loadAndResolveConfig(cliOverrides(cmd))
	if err != nil {
		return nil, err
	}

	cfg := resolved.Config
	w, err := writer.New(writer.Options{
		Kind:    writer.Kind(cfg.Writer.Kind),
		Format:  writer.Format(cfg.Writer.Format),
		NoColor: cfg.Writer.NoColor,
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("building writer: %w", err)
	}

	store, err := storage.Open(storage.Backend(cfg.Storage.Backend), resolved.StorePath())
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}

	opts := []logger.Option{logger.WithLogger(logging.New("pool"))}
	if store != nil {
		opts = append(opts, logger.WithStore(store))
	}
	if collector != nil {
		w = collector.Writer(w)
		opts = append(opts, logger.WithOnCreate(collector.Track))
	}
	opts = append(opts, logger.WithWriter(w))

	logging.New("cli").Debug("session opened",
		"store", cfg.Storage.Backend,
		"path", resolved.StorePath(),
		"writer", cfg.Writer.Kind,
	)

	return &session{
		resolved: resolved,
		store:    store,
		pool:     logger.New(opts...),
	}, nil
}

// Close releases the store.
func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// storeLabel describes the store for headers, e.g. "file .tealog/levels.json".
func (s *session) storeLabel() string {
	backend := s.resolved.Config.Storage.Backend
	switch storage.Backend(backend) {
	case storage.BackendFile, storage.BackendLevelDB:
		return backend + " " + s.resolved.StorePath()
	}
	return backend
}

// requireStore fails with a hint when persistence is disabled.
func (s *session) requireStore() error {
	if s.store == nil {
		return fmt.Errorf("no store configured (storage backend is %q); set --store or [storage] backend",
			s.resolved.Config.Storage.Backend)
	}
	return nil
}

// isPattern reports whether name contains glob syntax.
func isPattern(name string) bool {
	return strings.ContainsAny(name, "*?[{")
}

// matchPersisted returns the persisted logger names matching pattern.
func (s *session) matchPersisted(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	var matches []string
	for _, name := range s.pool.Persisted() {
		if ok, _ := doublestar.Match(pattern, name); ok {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// resolveTargets expands a name or pattern into logger names. Plain names
// are returned as-is; patterns must match at least one persisted name.
func (s *session) resolveTargets(arg string) ([]string, error) {
	if !isPattern(arg) {
		return []string{arg}, nil
	}
	matches, err := s.matchPersisted(arg)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no persisted logger matches %q", arg)
	}
	return matches, nil
}

// promptLevel asks for a level on the terminal, starting from current.
func promptLevel(title string, current level.Level) (level.Level, error) {
	if !isTerminal(os.Stdin) {
		return 0, fmt.Errorf("level argument is required when stdin is not a terminal")
	}

	options := make([]huh.Option[string], 0, len(level.All()))
	for _, lvl := range level.All() {
		options = append(options, huh.NewOption(lvl.String(), lvl.String()))
	}

	choice := current.String()
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&choice),
		),
	).
		WithTheme(huh.ThemeCharm()).
		Run()
	if err != nil {
		return 0, fmt.Errorf("level prompt: %w", err)
	}
	return level.Parse(choice)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
