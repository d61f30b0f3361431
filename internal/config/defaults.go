package config

import (
	"github.com/AbdelazizMoustafa10m/tealog/internal/storage"
	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

// DefaultStorePath is where the file backend keeps levels when no path is
// configured.
const DefaultStorePath = ".tealog/levels.json"

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: string(storage.BackendFile),
			Path:    DefaultStorePath,
		},
		Writer: WriterConfig{
			Kind:   string(writer.KindConsole),
			Format: string(writer.FormatText),
		},
		Levels: map[string]string{},
	}
}
