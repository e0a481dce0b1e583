package ux

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiscoverArtplanDir searches for a .artplan directory starting from
// the current directory and walking up to the filesystem root, so
// commands work from anywhere inside a project.
func DiscoverArtplanDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, ".artplan")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no .artplan directory found in %s or any parent directory", cwd)
}

// ResolveInputPath picks the planning input file: an explicit path
// wins, then the discovered project directory, then the defaults.
func ResolveInputPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir, err := DiscoverArtplanDir(); err == nil {
		candidate := filepath.Join(dir, "input.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return NewPathDefaults().InputFile()
}
