package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logging"
)

var setCmd = &cobra.Command{
	Use:   "set <name|pattern> [level]",
	Short: "Set the level of one or more loggers",
	Long: `Set and persist the level of a logger. A glob pattern such as "net/*"
applies to every persisted logger it matches. Without a level argument an
interactive picker is shown.

Levels: debug, info, warn, error, none (or 0-4).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		names, err := s.resolveTargets(args[0])
		if err != nil {
			return err
		}

		var lvl level.Level
		if len(args) == 2 {
			if lvl, err = parseLevelArg(args[1]); err != nil {
				return err
			}
		} else {
			current, err := s.pool.GetByName(names[0])
			if err != nil {
				return err
			}
			if lvl, err = promptLevel(fmt.Sprintf("Level for %s", args[0]), current.Level()); err != nil {
				return err
			}
		}

		return applyLevel(cmd, s, names, lvl)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <name|pattern>...",
	Short: "Reset loggers to the default level",
	Long:  "Set loggers back to warn, which removes their persisted level.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		var names []string
		for _, arg := range args {
			matched, err := s.resolveTargets(arg)
			if err != nil {
				return err
			}
			names = append(names, matched...)
		}
		return applyLevel(cmd, s, names, level.Default)
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
}

// parseLevelArg accepts a level name or its ordinal.
func parseLevelArg(arg string) (level.Level, error) {
	if lvl, err := level.Parse(arg); err == nil {
		return lvl, nil
	}
	if len(arg) == 1 && arg[0] >= '0' && arg[0] <= '9' {
		return level.Of(int(arg[0] - '0'))
	}
	return level.Parse(arg)
}

// applyLevel sets lvl on every named logger and reports each change.
func applyLevel(cmd *cobra.Command, s *session, names []string, lvl level.Level) error {
	if s.store == nil {
		logging.New("cli").Warn("no store configured, levels will not persist")
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		l, err := s.pool.GetByName(name)
		if err != nil {
			return err
		}
		old := l.Level()
		if err := l.SetLevel(lvl); err != nil {
			return err
		}
		if old == lvl {
			fmt.Fprintf(out, "%s: %s %s\n", name, renderLevel(lvl.String()), styleMuted.Render("(unchanged)"))
			continue
		}
		fmt.Fprintf(out, "%s: %s -> %s\n", name, renderLevel(old.String()), renderLevel(lvl.String()))
	}
	return nil
}
