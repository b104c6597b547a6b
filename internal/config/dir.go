// Package config loads shipshape configuration: the per-repo
// .shipshape.yaml file and the global configuration directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the shipshape global configuration directory.
//
// Resolution:
//   - $SHIPSHAPE_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/shipshape if set (respects XDG on any platform)
//   - %AppData%/shipshape on Windows
//   - ~/.config/shipshape on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("SHIPSHAPE_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shipshape")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "shipshape")
		}
	}

	// macOS and Linux: ~/.config/shipshape
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "shipshape")
}
