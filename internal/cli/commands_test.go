package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run resets the command tree and executes args, failing the test on a
// non-zero exit code.
func run(t *testing.T, args ...string) (string, string) {
	t.Helper()
	resetRootCmd(t)
	stdout, stderr, code := captureOutput(t, append([]string{"--no-color"}, args...)...)
	require.Equal(t, 0, code, "tealog %v failed: %s", args, stderr)
	return stdout, stderr
}

// runFails executes args and expects exit code 1. It returns stderr.
func runFails(t *testing.T, args ...string) string {
	t.Helper()
	resetRootCmd(t)
	_, stderr, code := captureOutput(t, append([]string{"--no-color"}, args...)...)
	require.Equal(t, 1, code, "tealog %v should fail", args)
	return stderr
}

func TestSetGetList(t *testing.T) {
	dir := chdirTemp(t)

	stdout, _ := run(t, "set", "db", "debug")
	assert.Equal(t, "db: warn -> debug\n", stdout)

	stdout, _ = run(t, "set", "net/http", "3")
	assert.Equal(t, "net/http: warn -> error\n", stdout)

	stdout, _ = run(t, "get", "db")
	assert.Equal(t, "debug (persisted)\n", stdout)

	stdout, _ = run(t, "get", "unknown")
	assert.Equal(t, "warn (default)\n", stdout)

	stdout, _ = run(t, "list")
	assert.Equal(t, "db        debug\nnet/http  error\n", stdout)

	_, err := os.Stat(filepath.Join(dir, ".tealog", "levels.json"))
	assert.NoError(t, err, "default file store is created in the working directory")
}

func TestSet_SameLevelIsUnchanged(t *testing.T) {
	chdirTemp(t)

	stdout, _ := run(t, "set", "db", "warn")
	assert.Equal(t, "db: warn (unchanged)\n", stdout)

	stdout, _ = run(t, "list")
	assert.Equal(t, "No persisted levels.\n", stdout)
}

func TestSet_Pattern(t *testing.T) {
	chdirTemp(t)

	run(t, "set", "net/http", "debug")
	run(t, "set", "net/dns", "debug")
	run(t, "set", "db", "debug")

	stdout, _ := run(t, "set", "net/*", "none")
	assert.Equal(t, "net/dns: debug -> none\nnet/http: debug -> none\n", stdout)

	stdout, _ = run(t, "get", "db")
	assert.Equal(t, "debug (persisted)\n", stdout)

	stderr := runFails(t, "set", "cache/*", "info")
	assert.Contains(t, stderr, `no persisted logger matches "cache/*"`)
}

func TestSet_InvalidLevel(t *testing.T) {
	chdirTemp(t)

	for _, lvl := range []string{"verbose", "DEBUG", "7"} {
		stderr := runFails(t, "set", "db", lvl)
		assert.Contains(t, stderr, "invalid level")
	}
}

func TestReset(t *testing.T) {
	chdirTemp(t)

	run(t, "set", "db", "debug")
	run(t, "set", "net", "info")

	stdout, _ := run(t, "reset", "db", "net")
	assert.Equal(t, "db: debug -> warn\nnet: info -> warn\n", stdout)

	stdout, _ = run(t, "list")
	assert.Equal(t, "No persisted levels.\n", stdout)
}

func TestList_MatchAndJSON(t *testing.T) {
	chdirTemp(t)

	run(t, "set", "net/http", "info")
	run(t, "set", "net/dns", "error")
	run(t, "set", "db", "debug")

	stdout, _ := run(t, "list", "--match", "net/**", "--json")

	var entries []levelEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	assert.Equal(t, []levelEntry{
		{Name: "net/dns", Level: "error"},
		{Name: "net/http", Level: "info"},
	}, entries)

	stderr := runFails(t, "list", "--match", "[")
	assert.Contains(t, stderr, "invalid pattern")
}

func TestClear(t *testing.T) {
	dir := chdirTemp(t)

	run(t, "set", "db", "debug")
	run(t, "set", "net", "none")

	stdout, _ := run(t, "clear")
	assert.Contains(t, stdout, "Cleared 2 persisted level(s)")
	assert.Contains(t, stdout, filepath.Join(".tealog", "levels.json"))

	stdout, _ = run(t, "list")
	assert.Equal(t, "No persisted levels.\n", stdout)

	data, err := os.ReadFile(filepath.Join(dir, ".tealog", "levels.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestNoStore(t *testing.T) {
	chdirTemp(t)

	stdout, _ := run(t, "--store", "none", "list")
	assert.Equal(t, "No persisted levels.\n", stdout)

	stderr := runFails(t, "--store", "none", "clear")
	assert.Contains(t, stderr, "no store configured")

	stdout, stderr = run(t, "--store", "none", "set", "db", "info")
	assert.Equal(t, "db: warn -> info\n", stdout)
	assert.Contains(t, stderr, "levels will not persist")
}

func TestStoreFlags(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.json")

	run(t, "--store-path", path, "set", "db", "info")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tea-logger-level:db": "info"}`, string(data))

	stderr := runFails(t, "--store", "redis", "list")
	assert.Contains(t, stderr, "redis")
}

func TestStoreFromEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "env.json")

	resetRootCmd(t)
	t.Setenv("TEALOG_STORE_PATH", path)
	_, stderr, code := captureOutput(t, "set", "db", "error")
	require.Equal(t, 0, code, stderr)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLevelDBStore(t *testing.T) {
	chdirTemp(t)

	run(t, "--store", "leveldb", "--store-path", "levels.db", "set", "db", "info")

	stdout, _ := run(t, "--store", "leveldb", "--store-path", "levels.db", "list")
	assert.Equal(t, "db  info\n", stdout)
}

func TestApply(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tealog.toml"), []byte(`
[levels]
db = "debug"
"net/http" = "error"
`), 0o644))

	stdout, _ := run(t, "apply", "--dry-run")
	assert.Equal(t, "would set db: debug\nwould set net/http: error\n", stdout)

	stdout, _ = run(t, "list")
	assert.Equal(t, "No persisted levels.\n", stdout)

	stdout, _ = run(t, "apply")
	assert.Equal(t, "db: warn -> debug\nnet/http: warn -> error\n", stdout)

	stdout, _ = run(t, "list")
	assert.Equal(t, "db        debug\nnet/http  error\n", stdout)
}

func TestApply_InvalidLevelChangesNothing(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tealog.toml"), []byte(`
[levels]
a = "debug"
b = "loud"
`), 0o644))

	stderr := runFails(t, "apply")
	assert.Contains(t, stderr, "levels.b")

	stdout, _ := run(t, "list")
	assert.Equal(t, "No persisted levels.\n", stdout)
}

func TestApply_NoLevels(t *testing.T) {
	chdirTemp(t)

	stdout, _ := run(t, "apply")
	assert.Equal(t, "No [levels] configured.\n", stdout)
}

func TestDemo(t *testing.T) {
	chdirTemp(t)

	run(t, "set", "db", "debug")

	stdout, stderr := run(t, "demo")
	assert.Contains(t, stdout, "db: debug message, level is debug")
	assert.Contains(t, stdout, "db: info message, level is debug")
	assert.NotContains(t, stdout, "app:")
	assert.Contains(t, stderr, "app: warn message, level is warn")
	assert.Contains(t, stderr, "http: error message, level is warn")
	assert.NotContains(t, stdout, "tealog_")
}

func TestDemo_Metrics(t *testing.T) {
	chdirTemp(t)

	stdout, _ := run(t, "--store", "memory", "demo", "--metrics")
	assert.Contains(t, stdout, "tealog_loggers 3")
	assert.Contains(t, stdout, `tealog_writes_total{level="warn"} 3`)
	assert.Contains(t, stdout, `tealog_writes_total{level="error"} 3`)
}

func TestDemo_CharmWriter(t *testing.T) {
	chdirTemp(t)

	_, stderr := run(t, "--store", "memory", "--writer", "charm", "demo")
	assert.Contains(t, stderr, "warn message")

	stderr = runFails(t, "--writer", "syslog", "demo")
	assert.Contains(t, stderr, "building writer")
}

func TestInit(t *testing.T) {
	dir := chdirTemp(t)

	run(t, "set", "db", "debug")

	stdout, _ := run(t, "init")
	assert.Contains(t, stdout, "Created tealog.toml")

	data, err := os.ReadFile(filepath.Join(dir, "tealog.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"db" = "debug"`)

	stderr := runFails(t, "init")
	assert.Contains(t, stderr, "already exists")

	run(t, "--writer", "logrus", "init", "--force")
	data, err = os.ReadFile(filepath.Join(dir, "tealog.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `kind = "logrus"`)

	stdout, _ = run(t, "config", "validate")
	assert.Contains(t, stdout, "No issues found.")
}

func TestInit_WithoutStoreCreatesNothing(t *testing.T) {
	dir := chdirTemp(t)

	run(t, "init", "sub")

	_, err := os.Stat(filepath.Join(dir, "sub", "tealog.toml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, ".tealog"))
	assert.True(t, os.IsNotExist(err), "init must not create the store")
}

func TestParseLevelArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "debug", want: "debug"},
		{arg: "none", want: "none"},
		{arg: "0", want: "debug"},
		{arg: "4", want: "none"},
		{arg: "5", wantErr: true},
		{arg: "Warn", wantErr: true},
		{arg: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			lvl, err := parseLevelArg(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lvl.String())
		})
	}
}

func TestIsPattern(t *testing.T) {
	assert.True(t, isPattern("net/*"))
	assert.True(t, isPattern("db-{a,b}"))
	assert.False(t, isPattern("net/http"))
}
