package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every persisted level",
	Long: `Remove every persisted logger level from the store. Keys that do not
belong to tealog are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.requireStore(); err != nil {
			return err
		}

		n := len(s.pool.Persisted())
		s.pool.ClearStorage()
		if left := len(s.pool.Persisted()); left > 0 {
			return fmt.Errorf("%d persisted level(s) could not be removed", left)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d persisted level(s) from %s.\n", n, s.storeLabel())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
