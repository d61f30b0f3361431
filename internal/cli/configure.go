package cli

import (
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/buildinfo"
	"github.com/AbdelazizMoustafa10m/tealog/internal/tui"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit logger levels interactively",
	Long: `Open the full-screen level editor. It lists every persisted logger and
persists each change as it is made.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.RunTUI(s.pool, tui.AppConfig{
			Version:    buildinfo.Version,
			StoreLabel: s.storeLabel(),
		})
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
