package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listMatch string
	listJSON  bool
)

// levelEntry is one row of `tealog list --json`.
type levelEntry struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted logger levels",
	Long: `List every logger whose level is persisted in the store. Loggers at the
default level (warn) are not stored and do not appear.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		names := s.pool.Persisted()
		if listMatch != "" {
			if names, err = s.matchPersisted(listMatch); err != nil {
				return err
			}
		}

		entries := make([]levelEntry, 0, len(names))
		for _, name := range names {
			l, err := s.pool.GetByName(name)
			if err != nil {
				return err
			}
			entries = append(entries, levelEntry{Name: name, Level: l.Level().String()})
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, styleMuted.Render("No persisted levels."))
			return nil
		}
		width := 0
		for _, e := range entries {
			width = max(width, len(e.Name))
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%-*s  %s\n", width, e.Name, renderLevel(e.Level))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only list names matching a glob pattern (e.g. \"net/**\")")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
