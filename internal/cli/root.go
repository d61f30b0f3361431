package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/tealog/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose   bool
	flagQuiet     bool
	flagConfig    string
	flagDir       string
	flagStore     string
	flagStorePath string
	flagWriter    string
	flagNoColor   bool
)

// envFile is loaded into the environment before flags are checked against
// it. Variables already set in the environment win.
const envFile = ".env"

// rootCmd is the base command for tealog.
var rootCmd = &cobra.Command{
	Use:   "tealog",
	Short: "Per-module log levels that survive restarts",
	Long: `tealog manages namespaced loggers whose levels can be changed at runtime
and are remembered between sessions. Use it to inspect and edit persisted
levels, seed them from tealog.toml, or try the writers with a demo.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Handle --dir first so .env and tealog.toml are looked up there.
		if flagDir != "" {
			if err := os.Chdir(flagDir); err != nil {
				return fmt.Errorf("changing directory to %s: %w", flagDir, err)
			}
		}

		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}

		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("TEALOG_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("TEALOG_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("TEALOG_NO_COLOR") != "") {
			flagNoColor = true
		}

		// Initialize logging.
		jsonFormat := os.Getenv("TEALOG_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)

		// Handle --no-color: disable colored output.
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		return nil
	},
}

func init() {
	registerPersistentFlags(rootCmd, true)
}

// registerPersistentFlags adds the global flags to cmd. When bind is true
// they are bound to the package-level flag variables.
func registerPersistentFlags(cmd *cobra.Command, bind bool) {
	f := cmd.PersistentFlags()
	if !bind {
		f.BoolP("verbose", "v", false, "Enable verbose (debug) output (env: TEALOG_VERBOSE)")
		f.BoolP("quiet", "q", false, "Suppress all output except errors (env: TEALOG_QUIET)")
		f.String("config", "", "Path to tealog.toml config file")
		f.String("dir", "", "Override working directory")
		f.String("store", "", "Storage backend: none, memory, file, leveldb (env: TEALOG_STORE)")
		f.String("store-path", "", "Path of the file or leveldb store (env: TEALOG_STORE_PATH)")
		f.String("writer", "", "Writer kind: console, charm, logrus (env: TEALOG_WRITER)")
		f.Bool("no-color", false, "Disable colored output (env: TEALOG_NO_COLOR, NO_COLOR)")
		return
	}

	f.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: TEALOG_VERBOSE)")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: TEALOG_QUIET)")
	f.StringVar(&flagConfig, "config", "", "Path to tealog.toml config file")
	f.StringVar(&flagDir, "dir", "", "Override working directory")
	f.StringVar(&flagStore, "store", "", "Storage backend: none, memory, file, leveldb (env: TEALOG_STORE)")
	f.StringVar(&flagStorePath, "store-path", "", "Path of the file or leveldb store (env: TEALOG_STORE_PATH)")
	f.StringVar(&flagWriter, "writer", "", "Writer kind: console, charm, logrus (env: TEALOG_WRITER)")
	f.BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: TEALOG_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd returns a new instance of the root command for use in external
// tools such as the shell completion generator. Its persistent flags are not
// bound to the package-level variables, so it is safe to use alongside the
// global rootCmd.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}
	registerPersistentFlags(cmd, false)

	// Attach all registered subcommands from the global tree.
	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
