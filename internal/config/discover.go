package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that overrides discovery. It
// may name a file, or a directory holding config.toml.
const EnvConfig = "ADMIT_CONFIG"

const fileName = "config.toml"

// DefaultPath is where `admit config init` writes when given no path:
// $XDG_CONFIG_HOME/admit/config.toml, else ~/.config/admit/config.toml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./admit.toml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "admit", fileName)
}

// SearchPaths lists the locations Discover tries after EnvConfig, in order.
func SearchPaths() []string {
	return []string{
		"./admit.toml",
		DefaultPath(),
		filepath.Join("/etc/admit", fileName),
	}
}

// Discover returns the config file to load. EnvConfig wins and must
// exist; otherwise the first regular file among SearchPaths is used.
func Discover() (string, error) {
	if env := os.Getenv(EnvConfig); env != "" {
		info, err := os.Stat(env)
		if err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, env, err)
		}
		if !info.IsDir() {
			return env, nil
		}
		path := filepath.Join(env, fileName)
		if !isFile(path) {
			return "", fmt.Errorf("%s=%s: directory has no %s", EnvConfig, env, fileName)
		}
		return path, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if isFile(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
