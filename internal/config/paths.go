package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// configDirName is the directory that marks a project root. Every generated
// project carries one, so its nearest ancestor identifies the root.
const configDirName = "app_config"

// ErrProjectRootNotFound indicates that no ancestor of the starting
// directory looks like a project root. There is no sensible default
// directory to fall back to, so resolution fails.
var ErrProjectRootNotFound = errors.New("project root not found")

// findProjectRoot walks upward from dir to the nearest ancestor containing
// an app_config directory and returns its absolute path.
func findProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	current := abs
	for {
		info, err := os.Stat(filepath.Join(current, configDirName))
		if err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: no %s directory in %s or any ancestor", ErrProjectRootNotFound, configDirName, abs)
		}
		current = parent
	}
}

// absolutizePaths rewrites the relative path fields against the project
// root. Absolute values pass through unchanged.
func absolutizePaths(p *PathsSettings) {
	p.DataRoot = absolutize(p.ProjectRoot, p.DataRoot)
	p.ConfigRoot = absolutize(p.ProjectRoot, p.ConfigRoot)
	p.CacheRoot = absolutize(p.ProjectRoot, p.CacheRoot)
}

func absolutize(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
