package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildVersion = "v0.0.0-test"

var (
	// binPath is the dymaxion binary built by TestMain.
	binPath  string
	buildErr error
)

// TestMain builds the binary once so the tests see real exit codes.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "dymaxion-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	binPath = filepath.Join(tmpDir, "dymaxion")

	cmd := exec.Command("go", "build",
		"-ldflags", "-X github.com/aiham/dymaxion/internal/cli.Version="+buildVersion,
		"-o", binPath, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		buildErr = fmt.Errorf("%w: %s", err, out)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

type result struct {
	stdout   string
	stderr   string
	exitCode int
}

// env is an isolated config and data directory for one test.
type env struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newEnv(t *testing.T, config string) *env {
	t.Helper()
	require.NoError(t, buildErr, "build dymaxion")

	dir := t.TempDir()
	e := &env{t: t, configDir: filepath.Join(dir, "config"), dataDir: filepath.Join(dir, "data")}
	if config != "" {
		require.NoError(t, os.MkdirAll(e.configDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(config), 0o644))
	}
	return e
}

func (e *env) run(stdin string, args ...string) result {
	e.t.Helper()
	all := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	cmd := exec.Command(binPath, all...)
	cmd.Env = append(os.Environ(), "DYMAXION_CONFIG_DIR=", "DYMAXION_DATA_DIR=", "DYMAXION_ASSETS_DIR=")
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := result{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		require.True(e.t, errors.As(err, &exitErr), "run dymaxion: %v", err)
		res.exitCode = exitErr.ExitCode()
	}
	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}

const quietConfig = "backend: sqlite\nanimation_scale: 0\nlog_level: error\n"

func TestVersionStamped(t *testing.T) {
	e := newEnv(t, "")
	res := e.run("", "version")
	require.Equal(t, 0, res.exitCode, res.stderr)
	assert.Contains(t, res.stdout, "dymaxion "+buildVersion)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   int
	}{
		{"topology", quietConfig, []string{"topology"}, 0},
		{"negative limit", quietConfig, []string{"scores", "--limit", "-1"}, 1},
		{"unknown command", quietConfig, []string{"fly"}, 1},
		{"invalid config value", "backend: postgres\n", []string{"scores"}, 1},
		{"malformed config", "backend: [\n", []string{"scores"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newEnv(t, tt.config).run("", tt.args...)
			assert.Equal(t, tt.want, res.exitCode, "stdout: %s\nstderr: %s", res.stdout, res.stderr)
			if tt.want != 0 {
				assert.Contains(t, res.stderr, "dymaxion:")
			}
		})
	}
}

func TestInitThenPlay(t *testing.T) {
	e := newEnv(t, "")
	res := e.run("", "init")
	require.Equal(t, 0, res.exitCode, res.stderr)
	assert.FileExists(t, filepath.Join(e.configDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(e.dataDir, "games.jsonl"))

	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(quietConfig), 0o644))
	res = e.run("new\nshow\nexit\nshow\n", "--json", "play", "--seed", "5")
	require.Equal(t, 0, res.exitCode, res.stderr)

	var lines []map[string]any
	sc := bufio.NewScanner(strings.NewReader(res.stdout))
	for sc.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		lines = append(lines, ev)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "new", lines[0]["command"])
	assert.Equal(t, "show", lines[1]["command"])
	assert.NotContains(t, lines[1], "error")
}
