package ux

import (
	"fmt"
	"strings"

	"github.com/artplanhq/artplan/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\n💡 Suggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError analyzes an error and adds contextual suggestions.
// Structured plan errors already carry their own suggestions and pass
// through untouched.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsPlanError(err); ok {
		return err
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "no such file or directory") {
		if strings.Contains(errMsg, "input.yaml") {
			return NewErrorWithSuggestion(err,
				"Create a planning input with 'artplan init' or pass one with --input")
		}
		if strings.Contains(errMsg, "config.yaml") {
			return NewErrorWithSuggestion(err,
				"Create .artplan/config.yaml or rely on the built-in defaults")
		}
		return NewErrorWithSuggestion(err,
			"Check the file path, or run 'artplan init' to scaffold a project")
	}

	if strings.Contains(errMsg, "yaml:") || strings.Contains(errMsg, "cannot unmarshal") {
		return NewErrorWithSuggestion(err,
			"The file is not valid YAML for this command; compare it against the examples in the README")
	}

	if strings.Contains(errMsg, "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check file permissions, or choose a writable location with --output")
	}

	return err
}
