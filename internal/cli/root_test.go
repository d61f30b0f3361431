package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetRootCmd resets all global flag values and Cobra's internal "Changed"
// tracking to pristine state. This must be called at the start of every test
// that invokes Execute() or manipulates rootCmd.
func resetRootCmd(t *testing.T) {
	t.Helper()
	flagVerbose = false
	flagQuiet = false
	flagConfig = ""
	flagDir = ""
	flagStore = ""
	flagStorePath = ""
	flagWriter = ""
	flagNoColor = false
	listMatch = ""
	listJSON = false
	applyDryRun = false
	demoMetrics = false
	initForce = false
	versionJSON = false
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	// Reset pflag "Changed" tracking so env var checks work correctly.
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
		})
	}
	for _, env := range []string{
		"TEALOG_VERBOSE", "TEALOG_QUIET", "TEALOG_NO_COLOR", "NO_COLOR",
		"TEALOG_STORE", "TEALOG_STORE_PATH", "TEALOG_WRITER", "TEALOG_WRITER_FORMAT",
	} {
		unsetenv(t, env)
	}
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	if old, ok := os.LookupEnv(key); ok {
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { _ = os.Setenv(key, old) })
	}
}

// chdirTemp switches into a fresh temporary directory for the duration of
// the test and returns it.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
	require.NoError(t, os.Chdir(dir))
	return dir
}

// captureOutput runs Execute() with the provided args, capturing stdout and
// stderr. It returns (stdout, stderr, exitCode).
func captureOutput(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr
	rOut, wOut, err := os.Pipe()
	require.NoError(t, err)
	rErr, wErr, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = wOut
	os.Stderr = wErr
	t.Cleanup(func() {
		os.Stdout = oldStdout
		os.Stderr = oldStderr
	})

	rootCmd.SetArgs(args)

	code := Execute()

	wOut.Close()
	wErr.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	_, _ = stdoutBuf.ReadFrom(rOut)
	_, _ = stderrBuf.ReadFrom(rErr)

	os.Stdout = oldStdout
	os.Stderr = oldStderr

	return stdoutBuf.String(), stderrBuf.String(), code
}

// noopCmdName is the name of the test-only noop subcommand.
const noopCmdName = "__test_noop"

// addNoopCmd registers a minimal subcommand on rootCmd so that
// PersistentPreRunE is invoked during tests.
func addNoopCmd(t *testing.T) {
	t.Helper()
	noop := &cobra.Command{
		Use:    noopCmdName,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	rootCmd.AddCommand(noop)
	t.Cleanup(func() {
		rootCmd.RemoveCommand(noop)
	})
}

func TestRootCmd_Metadata(t *testing.T) {
	assert.Equal(t, "tealog", rootCmd.Use)
	assert.Equal(t, "Per-module log levels that survive restarts", rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "remembered between sessions")
	assert.True(t, rootCmd.SilenceUsage, "SilenceUsage must be true")
	assert.True(t, rootCmd.SilenceErrors, "SilenceErrors must be true")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := []struct {
		flagName  string
		shorthand string
		envHint   string
	}{
		{flagName: "verbose", shorthand: "v", envHint: "TEALOG_VERBOSE"},
		{flagName: "quiet", shorthand: "q", envHint: "TEALOG_QUIET"},
		{flagName: "config"},
		{flagName: "dir"},
		{flagName: "store", envHint: "TEALOG_STORE"},
		{flagName: "store-path", envHint: "TEALOG_STORE_PATH"},
		{flagName: "writer", envHint: "TEALOG_WRITER"},
		{flagName: "no-color", envHint: "NO_COLOR"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "persistent flag %q must be registered", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			if tt.envHint != "" {
				assert.Contains(t, flag.Usage, tt.envHint)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{
		"apply", "clear", "completion", "config", "configure", "demo",
		"get", "init", "list", "reset", "set", "version",
	}
	var got []string
	for _, cmd := range rootCmd.Commands() {
		if !cmd.Hidden && cmd.Name() != "help" {
			got = append(got, cmd.Name())
		}
	}
	assert.Subset(t, got, want)
}

func TestExecute_NoSubcommand_ReturnsZero(t *testing.T) {
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	code := Execute()
	assert.Equal(t, 0, code, "Execute with no subcommand should print help and return 0")
	assert.Contains(t, buf.String(), "Usage:")
}

func TestExecute_UnknownSubcommand_ReturnsOne(t *testing.T) {
	resetRootCmd(t)

	_, stderr, code := captureOutput(t, "nonexistent-command")

	assert.Equal(t, 1, code, "unknown subcommand should return exit code 1")
	assert.Contains(t, stderr, "unknown command")
}

func TestPersistentPreRunE_Flags(t *testing.T) {
	resetRootCmd(t)
	addNoopCmd(t)

	rootCmd.SetArgs([]string{"--verbose", "--quiet", "--no-color", "--store", "memory", noopCmdName})

	code := Execute()
	assert.Equal(t, 0, code)
	assert.True(t, flagVerbose)
	assert.True(t, flagQuiet)
	assert.True(t, flagNoColor)
	assert.Equal(t, "memory", flagStore)
}

func TestPersistentPreRunE_Env(t *testing.T) {
	tests := []struct {
		env  string
		flag *bool
	}{
		{"TEALOG_VERBOSE", &flagVerbose},
		{"TEALOG_QUIET", &flagQuiet},
		{"TEALOG_NO_COLOR", &flagNoColor},
		{"NO_COLOR", &flagNoColor},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			resetRootCmd(t)
			addNoopCmd(t)
			t.Setenv(tt.env, "1")

			rootCmd.SetArgs([]string{noopCmdName})
			assert.Equal(t, 0, Execute())
			assert.True(t, *tt.flag, "%s should set the flag", tt.env)
		})
	}
}

func TestPersistentPreRunE_DotEnv(t *testing.T) {
	resetRootCmd(t)
	addNoopCmd(t)
	dir := chdirTemp(t)
	unsetenv(t, "TEALOG_VERBOSE")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEALOG_VERBOSE=1\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("TEALOG_VERBOSE") })

	rootCmd.SetArgs([]string{noopCmdName})
	assert.Equal(t, 0, Execute())
	assert.True(t, flagVerbose, ".env should be loaded into the environment")
}

func TestPersistentPreRunE_DirFlag(t *testing.T) {
	resetRootCmd(t)
	addNoopCmd(t)
	chdirTemp(t)

	tmpDir := t.TempDir()
	rootCmd.SetArgs([]string{"--dir", tmpDir, noopCmdName})
	assert.Equal(t, 0, Execute())

	cwd, err := os.Getwd()
	require.NoError(t, err)
	resolvedCwd, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)
	resolvedTmp, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, resolvedTmp, resolvedCwd)
}

func TestPersistentPreRunE_DirFlag_Invalid(t *testing.T) {
	resetRootCmd(t)
	addNoopCmd(t)

	_, stderr, code := captureOutput(t, "--dir", "/nonexistent/path/that/does/not/exist", noopCmdName)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "changing directory to")
}

func TestRootCmd_HelpOutput(t *testing.T) {
	resetRootCmd(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})

	assert.Equal(t, 0, Execute())
	for _, want := range []string{"Usage:", "Flags:", "--store", "--store-path", "--writer", "--no-color", "-v", "-q"} {
		assert.Contains(t, buf.String(), want)
	}
}
