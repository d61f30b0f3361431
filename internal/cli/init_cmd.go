package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/config"
	"github.com/AbdelazizMoustafa10m/tealog/internal/storage"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a starter tealog.toml",
	Long: `Write a tealog.toml into the given directory (default: the current one).
The --store, --store-path and --writer flags are used as its values. The
[levels] table is seeded from the levels currently persisted, if any.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := "."
		if len(args) == 1 {
			dest = args[0]
		}

		vars := config.StarterVars{
			Backend: flagStore,
			Path:    flagStorePath,
			Writer:  flagWriter,
		}
		if levels, err := persistedLevels(cmd); err == nil {
			vars.Levels = levels
		}

		path, err := config.WriteStarter(dest, vars, initForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing tealog.toml")
	rootCmd.AddCommand(initCmd)
}

// persistedLevels reads the levels in the configured store. It returns nil
// when the store does not exist yet, without creating it.
func persistedLevels(cmd *cobra.Command) (map[string]string, error) {
	resolved, _, err := loadAndResolveConfig(cliOverrides(cmd))
	if err != nil {
		return nil, err
	}
	switch storage.Backend(resolved.Config.Storage.Backend) {
	case storage.BackendFile, storage.BackendLevelDB:
		if _, err := os.Stat(resolved.StorePath()); err != nil {
			return nil, nil
		}
	default:
		return nil, nil
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	levels := make(map[string]string)
	for _, name := range s.pool.Persisted() {
		l, err := s.pool.GetByName(name)
		if err != nil {
			return nil, err
		}
		levels[name] = l.Level().String()
	}
	return levels, nil
}
