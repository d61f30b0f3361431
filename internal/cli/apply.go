package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
)

var applyDryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the [levels] table from tealog.toml",
	Long: `Set every logger listed in the [levels] table of tealog.toml to its
configured level and persist it. Loggers not in the table are untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		levels := s.resolved.Config.Levels
		if len(levels) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("No [levels] configured."))
			return nil
		}

		names := make([]string, 0, len(levels))
		for name := range levels {
			names = append(names, name)
		}
		sort.Strings(names)

		// Parse everything before changing anything.
		parsed := make(map[string]level.Level, len(names))
		for _, name := range names {
			lvl, err := level.Parse(levels[name])
			if err != nil {
				return fmt.Errorf("levels.%s: %w", name, err)
			}
			parsed[name] = lvl
		}

		if applyDryRun {
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "would set %s: %s\n", name, renderLevel(parsed[name].String()))
			}
			return nil
		}

		for _, name := range names {
			if err := applyLevel(cmd, s, []string{name}, parsed[name]); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show planned changes without applying them")
	rootCmd.AddCommand(applyCmd)
}
