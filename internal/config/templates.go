package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/charmbracelet/log"
)

//go:embed templates/tealog.toml.tmpl
var templateFS embed.FS

const starterTemplate = "templates/tealog.toml.tmpl"

// ErrConfigExists is returned by WriteStarter when tealog.toml already
// exists and force is not set.
var ErrConfigExists = errors.New("config file already exists")

// StarterVars holds the values substituted into a new tealog.toml.
type StarterVars struct {
	Backend string
	Path    string
	Writer  string
	// Levels seeds the [levels] table.
	Levels map[string]string
}

type starterLevel struct {
	Name  string
	Level string
}

// RenderStarter renders a tealog.toml from vars. Empty fields take their
// default values.
func RenderStarter(vars StarterVars) ([]byte, error) {
	defaults := NewDefaults()
	if vars.Backend == "" {
		vars.Backend = defaults.Storage.Backend
	}
	if vars.Path == "" {
		vars.Path = defaults.Storage.Path
	}
	if vars.Writer == "" {
		vars.Writer = defaults.Writer.Kind
	}

	names := make([]string, 0, len(vars.Levels))
	for name := range vars.Levels {
		names = append(names, name)
	}
	sort.Strings(names)
	levels := make([]starterLevel, 0, len(names))
	for _, name := range names {
		levels = append(levels, starterLevel{Name: name, Level: vars.Levels[name]})
	}

	content, err := templateFS.ReadFile(starterTemplate)
	if err != nil {
		return nil, fmt.Errorf("reading embedded template: %w", err)
	}
	tmpl, err := template.New("tealog.toml").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		Backend, Path, Writer string
		Levels                []starterLevel
	}{vars.Backend, vars.Path, vars.Writer, levels}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteStarter renders a tealog.toml into destDir and returns its path. An
// existing file is only overwritten when force is true.
func WriteStarter(destDir string, vars StarterVars, force bool) (string, error) {
	dest := filepath.Join(destDir, ConfigFileName)

	if _, err := os.Stat(dest); err == nil {
		if !force {
			return "", fmt.Errorf("%s: %w", dest, ErrConfigExists)
		}
		log.Debug("overwriting existing file", "path", dest)
	}

	out, err := RenderStarter(vars)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", destDir, err)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", dest, err)
	}

	log.Debug("created config file", "path", dest)
	return dest, nil
}
