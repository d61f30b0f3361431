package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/logger"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show the effective level of a logger",
	Long: `Show the level a logger starts with: the persisted level when one is
stored, otherwise the default (warn).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		l, err := s.pool.GetByName(args[0])
		if err != nil {
			return err
		}

		source := "default"
		if s.store != nil {
			if _, ok, err := s.store.Get(logger.Key(l.Name())); err == nil && ok {
				source = "persisted"
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", renderLevel(l.Level().String()), styleMuted.Render("("+source+")"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
