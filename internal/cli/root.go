// Package cli implements the dymaxion command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiham/dymaxion/internal/paths"
	"github.com/aiham/dymaxion/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// ExitCode maps an error returned by the root command to a process exit
// code. Errors without a code, such as flag parsing failures, are user
// errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "dymaxion" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dymaxion",
		Short: "A sliding-triangle puzzle on the Dymaxion map",
		Long: "Dymaxion cuts a picture into the 23 triangles of Buckminster Fuller's\n" +
			"Dymaxion map, shuffles them and lets you swap them back into place.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: config log_level or warn)")

	root.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newTopologyCmd(a),
		newShuffleCmd(a),
		newPlayCmd(a),
		newPreloadCmd(a),
		newScoresCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dymaxion:", err)
		os.Exit(ExitCode(err))
	}
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	// version works without touching the filesystem.
	if cmd.Name() == "version" {
		a.logger = newLogger(cmd, slog.LevelWarn)
		return nil
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = strings.ToLower(a.flags.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("config %s: %w", configDir, err))
	}

	if cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir); err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if cfg.AssetsDir, err = paths.ResolveAssetsDir("", cfg.AssetsDir); err != nil {
		return sysError(fmt.Errorf("resolve assets dir: %w", err))
	}

	a.cfg = cfg
	a.logger = newLogger(cmd, parseLevel(cfg.LogLevel))
	a.logger.Debug("config loaded", "config_dir", configDir, "data_dir", cfg.DataDir, "assets_dir", cfg.AssetsDir)
	return nil
}

func newLogger(cmd *cobra.Command, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
