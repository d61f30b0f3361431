package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/metrics"
)

var demoMetrics bool

// demoLoggers are the loggers exercised by `tealog demo`.
var demoLoggers = []string{"app", "db", "http"}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Log through a few loggers at their current levels",
	Long: `Create the loggers app, db and http and call every log method on each.
Only methods enabled by the logger's level produce output, so this shows the
effect of persisted levels and of the chosen --writer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			collector *metrics.Collector
			reg       *prometheus.Registry
		)
		if demoMetrics {
			reg = prometheus.NewRegistry()
			c, err := metrics.NewCollector(reg)
			if err != nil {
				return err
			}
			collector = c
		}

		s, err := openSession(cmd, collector)
		if err != nil {
			return err
		}
		defer s.Close()

		for _, name := range demoLoggers {
			l, err := s.pool.GetByName(name)
			if err != nil {
				return err
			}
			l.Log("debug message, level is", l.Level().String())
			l.Info("info message, level is", l.Level().String())
			l.Warn("warn message, level is", l.Level().String())
			l.Error("error message, level is", l.Level().String())
		}

		if reg == nil {
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		return metrics.WriteText(out, reg)
	},
}

func init() {
	demoCmd.Flags().BoolVar(&demoMetrics, "metrics", false, "Print the collected Prometheus metrics afterwards")
	rootCmd.AddCommand(demoCmd)
}
