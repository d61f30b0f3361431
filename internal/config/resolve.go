package config

import (
	"path/filepath"
	"strconv"
)

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from the tealog.toml config file.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
// The Config field contains the merged values; Sources tracks where each came from.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "storage.backend"
	Path    string                  // path to the config file used (empty if none)
}

// StorePath returns storage.path ready for opening. A relative path taken
// from the config file is resolved against the file's directory; any other
// relative path is left relative to the working directory.
func (rc *ResolvedConfig) StorePath() string {
	p := rc.Config.Storage.Path
	if p == "" || filepath.IsAbs(p) || rc.Path == "" || rc.Sources["storage.path"] != SourceFile {
		return p
	}
	return filepath.Join(filepath.Dir(rc.Path), p)
}

// CLIOverrides captures flag values that can override configuration.
// A nil pointer means "not overridden"; a *string pointing to "" means
// "override to empty string."
type CLIOverrides struct {
	Store     *string
	StorePath *string
	Writer    *string
	Format    *string
	NoColor   *bool
}

// EnvFunc is a function that looks up environment variables.
// Default implementation is os.LookupEnv. Injected for testability.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration from all sources in priority order:
// CLI flags > environment variables > config file > defaults.
//
// fileConfig is nil when no tealog.toml was found. A nil envFn or overrides
// contributes nothing.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	// Layer 1: defaults.
	resolveFromDefaults(rc, defaults)

	// Layer 2: file (non-zero values override; levels merge by name).
	if fileConfig != nil {
		resolveFromFile(rc, fileConfig)
	}

	// Layer 3: environment.
	resolveFromEnv(rc, envFn)

	// Layer 4: CLI flags.
	resolveFromCLI(rc, overrides)

	return rc
}

// --- Layer 1: Defaults ---

func resolveFromDefaults(rc *ResolvedConfig, defaults *Config) {
	c := rc.Config

	setString(&c.Storage.Backend, defaults.Storage.Backend, "storage.backend", SourceDefault, rc.Sources)
	setString(&c.Storage.Path, defaults.Storage.Path, "storage.path", SourceDefault, rc.Sources)
	setString(&c.Writer.Kind, defaults.Writer.Kind, "writer.kind", SourceDefault, rc.Sources)
	setString(&c.Writer.Format, defaults.Writer.Format, "writer.format", SourceDefault, rc.Sources)
	c.Writer.NoColor = defaults.Writer.NoColor
	rc.Sources["writer.no_color"] = SourceDefault

	c.Levels = make(map[string]string, len(defaults.Levels))
	for name, lvl := range defaults.Levels {
		c.Levels[name] = lvl
		rc.Sources["levels."+name] = SourceDefault
	}
}

// --- Layer 2: File ---

func resolveFromFile(rc *ResolvedConfig, file *Config) {
	c := rc.Config

	mergeString(&c.Storage.Backend, file.Storage.Backend, "storage.backend", SourceFile, rc.Sources)
	mergeString(&c.Storage.Path, file.Storage.Path, "storage.path", SourceFile, rc.Sources)
	mergeString(&c.Writer.Kind, file.Writer.Kind, "writer.kind", SourceFile, rc.Sources)
	mergeString(&c.Writer.Format, file.Writer.Format, "writer.format", SourceFile, rc.Sources)
	if file.Writer.NoColor {
		c.Writer.NoColor = true
		rc.Sources["writer.no_color"] = SourceFile
	}

	for name, lvl := range file.Levels {
		c.Levels[name] = lvl
		rc.Sources["levels."+name] = SourceFile
	}
}

// --- Layer 3: Environment ---

// Environment variable mapping:
//
//	TEALOG_STORE          -> storage.backend
//	TEALOG_STORE_PATH     -> storage.path
//	TEALOG_WRITER         -> writer.kind
//	TEALOG_WRITER_FORMAT  -> writer.format
//	TEALOG_NO_COLOR       -> writer.no_color (any value strconv.ParseBool accepts)
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	c := rc.Config

	if val, ok := envFn("TEALOG_STORE"); ok {
		c.Storage.Backend = val
		rc.Sources["storage.backend"] = SourceEnv
	}
	if val, ok := envFn("TEALOG_STORE_PATH"); ok {
		c.Storage.Path = val
		rc.Sources["storage.path"] = SourceEnv
	}
	if val, ok := envFn("TEALOG_WRITER"); ok {
		c.Writer.Kind = val
		rc.Sources["writer.kind"] = SourceEnv
	}
	if val, ok := envFn("TEALOG_WRITER_FORMAT"); ok {
		c.Writer.Format = val
		rc.Sources["writer.format"] = SourceEnv
	}
	if val, ok := envFn("TEALOG_NO_COLOR"); ok {
		// Unparseable values are ignored rather than guessed at.
		if b, err := strconv.ParseBool(val); err == nil {
			c.Writer.NoColor = b
			rc.Sources["writer.no_color"] = SourceEnv
		}
	}
}

// --- Layer 4: CLI overrides ---

func resolveFromCLI(rc *ResolvedConfig, overrides *CLIOverrides) {
	c := rc.Config

	if overrides.Store != nil {
		c.Storage.Backend = *overrides.Store
		rc.Sources["storage.backend"] = SourceCLI
	}
	if overrides.StorePath != nil {
		c.Storage.Path = *overrides.StorePath
		rc.Sources["storage.path"] = SourceCLI
	}
	if overrides.Writer != nil {
		c.Writer.Kind = *overrides.Writer
		rc.Sources["writer.kind"] = SourceCLI
	}
	if overrides.Format != nil {
		c.Writer.Format = *overrides.Format
		rc.Sources["writer.format"] = SourceCLI
	}
	if overrides.NoColor != nil {
		c.Writer.NoColor = *overrides.NoColor
		rc.Sources["writer.no_color"] = SourceCLI
	}
}

// --- Helpers ---

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty. An empty
// string in the file means "not set in file".
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}
