package art

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/artplanhq/artplan/internal/errors"
)

// InputRepository defines the interface for loading and saving planning
// input files. The interface enables dependency injection for tests.
type InputRepository interface {
	// Load reads a PlanningInput from a file
	Load(path string) (*PlanningInput, error)

	// Save writes a PlanningInput to a file
	Save(input *PlanningInput, path string) error
}

// FileInputRepository implements InputRepository for YAML files
type FileInputRepository struct{}

// NewFileInputRepository creates a new file-based input repository
func NewFileInputRepository() *FileInputRepository {
	return &FileInputRepository{}
}

// Load reads a PlanningInput from a YAML file
func (r *FileInputRepository) Load(path string) (*PlanningInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputFileError(path, err)
	}

	var input PlanningInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputFileUnmarshal, "unmarshal planning input", err).
			WithSuggestion("Check the YAML structure against the documented input layout")
	}

	return &input, nil
}

// Save writes a PlanningInput to a YAML file
func (r *FileInputRepository) Save(input *PlanningInput, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "create directory", err)
	}

	data, err := yaml.Marshal(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal planning input", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write planning input file", err)
	}

	return nil
}

// Default instance for package-level functions
var defaultRepository = NewFileInputRepository()

// LoadInput reads a PlanningInput from a YAML file using the default
// repository.
func LoadInput(path string) (*PlanningInput, error) {
	return defaultRepository.Load(path)
}

// SaveInput writes a PlanningInput to a YAML file using the default
// repository.
func SaveInput(input *PlanningInput, path string) error {
	return defaultRepository.Save(input, path)
}
