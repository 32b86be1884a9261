// Package paths resolves where textobjects keeps its files.
package paths

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the per-project directory that holds a local config.
	DirName = ".textobjects"
	// ConfigFileName is the config file inside DirName or the user config dir.
	ConfigFileName = "config.yaml"
)

// UserConfigDir returns ~/.config/textobjects, or "" when there is no home
// directory.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "textobjects")
}

// UserConfigFile returns the user-wide config file path, or "".
func UserConfigFile() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// ResolveConfigFile resolves the config file path from user input.
//
// Input normalization:
//   - "/path/to/project" (a directory) -> "/path/to/project/.textobjects/config.yaml"
//   - "/path/to/project/.textobjects" -> "/path/to/project/.textobjects/config.yaml"
//   - "/path/to/custom.yaml" -> "/path/to/custom.yaml"
//   - "" -> the nearest .textobjects/config.yaml from the working directory
//     upward, else the user config file
func ResolveConfigFile(path string) string {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if local, ok := FindLocalConfig(wd); ok {
				return local
			}
		}
		return UserConfigFile()
	}

	path = filepath.Clean(path)
	if filepath.Base(path) == DirName {
		return filepath.Join(path, ConfigFileName)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DirName, ConfigFileName)
	}
	return path
}

// FindLocalConfig walks from start up to the filesystem root looking for
// .textobjects/config.yaml.
func FindLocalConfig(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, DirName, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
