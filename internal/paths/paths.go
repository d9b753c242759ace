// Package paths resolves the configuration, data and asset directories.
//
// Each directory has a precedence chain: an explicit flag wins, then the
// config file value (data and assets only), then an environment variable,
// then a default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user configuration subdirectory.
const AppName = "dymaxion"

// DefaultDataDirName is the CWD-relative data directory.
const DefaultDataDirName = ".dymaxion-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "DYMAXION_CONFIG_DIR"
	EnvDataDir   = "DYMAXION_DATA_DIR"
	EnvAssetsDir = "DYMAXION_ASSETS_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/dymaxion (fallback ~/.config/dymaxion)
// macOS:   ~/Library/Application Support/dymaxion
// Windows: %APPDATA%/dymaxion
func DefaultConfigDir() (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ResolveConfigDir applies flag > DYMAXION_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok := first(flag, os.Getenv(EnvConfigDir)); ok {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config data_dir > DYMAXION_DATA_DIR >
// $(CWD)/.dymaxion-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	return resolve(DefaultDataDirName, flag, configValue, os.Getenv(EnvDataDir))
}

// ResolveAssetsDir applies flag > config assets_dir > DYMAXION_ASSETS_DIR >
// the working directory, where the img/ tree of a checkout lives.
func ResolveAssetsDir(flag, configValue string) (string, error) {
	return resolve(".", flag, configValue, os.Getenv(EnvAssetsDir))
}

func resolve(cwdDefault string, candidates ...string) (string, error) {
	if dir, ok := first(candidates...); ok {
		return filepath.Abs(dir)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, cwdDefault), nil
}

func first(values ...string) (string, bool) {
	for _, v := range values {
		if v != "" {
			return v, true
		}
	}
	return "", false
}
