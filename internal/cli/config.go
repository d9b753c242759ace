package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aiham/dymaxion/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyAssetsDir      = "assets_dir"
	cfgKeyPuzzles        = "puzzles"
	cfgKeyAnimationScale = "animation_scale"
	cfgKeyPreloadWorkers = "preload_workers"
	cfgKeyLogLevel       = "log_level"
)

const configHeader = `# Dymaxion configuration.
# data_dir and assets_dir may be overridden by --data-dir,
# DYMAXION_DATA_DIR and DYMAXION_ASSETS_DIR.
`

// defaultConfig is the configuration written by init and used for keys
// missing from config.yaml.
func defaultConfig() types.Config {
	return types.Config{
		Backend:        types.BackendSQLite,
		Puzzles:        append([]string(nil), types.DefaultPuzzles...),
		AnimationScale: 1,
		PreloadWorkers: 8,
		LogLevel:       "warn",
	}
}

// loadConfig reads config.yaml from configDir with viper. A missing file is
// not an error; every key falls back to defaultConfig.
func loadConfig(configDir string) (types.Config, error) {
	def := defaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyPuzzles, def.Puzzles)
	v.SetDefault(cfgKeyAnimationScale, def.AnimationScale)
	v.SetDefault(cfgKeyPreloadWorkers, def.PreloadWorkers)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		Backend:        v.GetString(cfgKeyBackend),
		DataDir:        v.GetString(cfgKeyDataDir),
		AssetsDir:      v.GetString(cfgKeyAssetsDir),
		Puzzles:        v.GetStringSlice(cfgKeyPuzzles),
		AnimationScale: v.GetFloat64(cfgKeyAnimationScale),
		PreloadWorkers: v.GetInt(cfgKeyPreloadWorkers),
		LogLevel:       v.GetString(cfgKeyLogLevel),
	}, nil
}

// writeConfigIfMissing creates config.yaml in configDir from cfg. An existing
// file is left alone. Reports whether the file was written.
func writeConfigIfMissing(configDir string, cfg types.Config) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
