package ux

import (
	"os"
	"path/filepath"
)

// PathDefaults provides smart defaults for common file paths
type PathDefaults struct {
	ArtplanDir string
}

// NewPathDefaults creates a new PathDefaults with sensible defaults
func NewPathDefaults() *PathDefaults {
	return &PathDefaults{
		ArtplanDir: ".artplan",
	}
}

// InputFile returns the default path to the planning input
func (pd *PathDefaults) InputFile() string {
	path := filepath.Join(pd.ArtplanDir, "input.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	// Fall back to a root-level input.yaml when the project keeps its
	// planning files outside .artplan.
	if _, err := os.Stat("input.yaml"); err == nil {
		return "input.yaml"
	}
	return path
}

// PlanFile returns the default path for a written plan
func (pd *PathDefaults) PlanFile() string {
	return filepath.Join(pd.ArtplanDir, "plan.yaml")
}

// ConfigFile returns the default path to the planning configuration
func (pd *PathDefaults) ConfigFile() string {
	return filepath.Join(pd.ArtplanDir, "config.yaml")
}

// DataDir returns the directory holding the plan history database
func (pd *PathDefaults) DataDir() string {
	return filepath.Join(pd.ArtplanDir, "data")
}

// EnsureArtplanDir creates the .artplan directory if it doesn't exist
func (pd *PathDefaults) EnsureArtplanDir() error {
	return os.MkdirAll(pd.ArtplanDir, 0o755)
}
