// Package where resolves the directories and files clipwave keeps on disk.
package where

import (
	"os"
	"path/filepath"

	"github.com/clipwave/clipwave/constant"
	"github.com/clipwave/clipwave/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "CLIPWAVE_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the configuration directory. It honors CLIPWAVE_CONFIG_PATH
// and falls back to the user config dir.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Clipwave))
}

// Cache is the cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Clipwave))
}

// Logs is the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History is the watch history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Temp is a scratch directory, also used for the mpv IPC socket.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Clipwave))
}
