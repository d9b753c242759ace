package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

type initResult struct {
	ConfigFile    string `json:"config_file"`
	ConfigWritten bool   `json:"config_written"`
	DataDir       string `json:"data_dir"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and game history",
		Long: "Write a default config.yaml to the configuration directory if none exists,\n" +
			"then create the data directory and its games.jsonl history.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	cfg := defaultConfig()
	// Only an explicit --data-dir is pinned in the file; otherwise the
	// environment and CWD default keep applying.
	if a.flags.dataDir != "" {
		cfg.DataDir = a.cfg.DataDir
	}

	written, err := writeConfigIfMissing(a.configDir, cfg)
	if err != nil {
		return sysError(err)
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	res := initResult{
		ConfigFile:    filepath.Join(a.configDir, configFileExt),
		ConfigWritten: written,
		DataDir:       a.cfg.DataDir,
	}
	a.logger.Info("initialized", "config", res.ConfigFile, "data_dir", res.DataDir)
	if a.flags.jsonMode {
		return writeJSON(cmd, res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Dymaxion initialized successfully")
	return nil
}
