package config

// Config is the top-level configuration structure mapping to tealog.toml.
type Config struct {
	Storage StorageConfig     `toml:"storage"`
	Writer  WriterConfig      `toml:"writer"`
	Levels  map[string]string `toml:"levels"`
}

// StorageConfig maps to the [storage] section in tealog.toml.
type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// WriterConfig maps to the [writer] section in tealog.toml.
type WriterConfig struct {
	Kind    string `toml:"kind"`
	Format  string `toml:"format"`
	NoColor bool   `toml:"no_color"`
}
