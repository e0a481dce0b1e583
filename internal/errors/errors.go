package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Input errors (INPUT-001 to INPUT-099)
	ErrCodeInputInvalid       ErrorCode = "INPUT-001"
	ErrCodeInputEmptyID       ErrorCode = "INPUT-002"
	ErrCodeInputDuplicateID   ErrorCode = "INPUT-003"
	ErrCodeInputBadIncrement  ErrorCode = "INPUT-004"
	ErrCodeInputBadIteration  ErrorCode = "INPUT-005"
	ErrCodeInputNegativeSize  ErrorCode = "INPUT-006"
	ErrCodeInputUnknownKind   ErrorCode = "INPUT-007"
	ErrCodeInputFileNotFound  ErrorCode = "INPUT-008"
	ErrCodeInputFileUnmarshal ErrorCode = "INPUT-009"

	// Dependency graph errors (GRAPH-001 to GRAPH-099)
	ErrCodeGraphInvalid      ErrorCode = "GRAPH-001"
	ErrCodeGraphHardCycle    ErrorCode = "GRAPH-002"
	ErrCodeGraphUnknownItem  ErrorCode = "GRAPH-003"
	ErrCodeGraphBadStrength  ErrorCode = "GRAPH-004"
	ErrCodeGraphBadWeight    ErrorCode = "GRAPH-005"
	ErrCodeGraphSelfEdge     ErrorCode = "GRAPH-006"
	ErrCodeGraphNotValidated ErrorCode = "GRAPH-007"

	// Capacity errors (CAPACITY-001 to CAPACITY-099)
	ErrCodeCapacityBadFactor   ErrorCode = "CAPACITY-001"
	ErrCodeCapacityBadVelocity ErrorCode = "CAPACITY-002"
	ErrCodeCapacityBadBuffer   ErrorCode = "CAPACITY-003"
	ErrCodeCapacityNoTeams     ErrorCode = "CAPACITY-004"

	// Plan errors (PLAN-001 to PLAN-099)
	ErrCodePlanInvalid       ErrorCode = "PLAN-001"
	ErrCodePlanPrecondition  ErrorCode = "PLAN-002"
	ErrCodePlanNotFound      ErrorCode = "PLAN-003"
	ErrCodePlanFingerprint   ErrorCode = "PLAN-004"
	ErrCodePlanOverAllocated ErrorCode = "PLAN-005"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-004"
	ErrCodeFileMarshal     ErrorCode = "IO-005"

	// Store errors (STORE-001 to STORE-099)
	ErrCodeStoreOpenFailed  ErrorCode = "STORE-001"
	ErrCodeStoreQueryFailed ErrorCode = "STORE-002"
	ErrCodeStoreWriteFailed ErrorCode = "STORE-003"
	ErrCodeStoreRunNotFound ErrorCode = "STORE-004"
)

// PlanError represents an enhanced error with code, suggestions, and documentation
type PlanError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *PlanError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PlanError) Unwrap() error {
	return e.Cause
}

// New creates a new PlanError
func New(code ErrorCode, message string) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PlanError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *PlanError) WithSuggestion(suggestion string) *PlanError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *PlanError) WithSuggestions(suggestions ...string) *PlanError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *PlanError) WithDocs(url string) *PlanError {
	e.DocsURL = url
	return e
}

// HasCode reports whether err is a PlanError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	pe, ok := AsPlanError(err)
	return ok && pe.Code == code
}

// AsPlanError extracts a PlanError from an error chain.
func AsPlanError(err error) (*PlanError, bool) {
	for err != nil {
		if pe, ok := err.(*PlanError); ok {
			return pe, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

// Common error constructors for frequently used errors

// NewHardCycleError creates an invalid-dependency-graph error for a hard cycle
func NewHardCycleError(cycle string) *PlanError {
	return New(ErrCodeGraphHardCycle, fmt.Sprintf("hard dependency cycle detected: %s", cycle)).
		WithSuggestion("Break the cycle by downgrading one edge to a soft dependency").
		WithSuggestion("Run 'artplan graph --in <file>' to inspect all cycles")
}

// NewUnknownItemError creates an error for an edge referencing a missing work item
func NewUnknownItemError(itemID string) *PlanError {
	return New(ErrCodeGraphUnknownItem, fmt.Sprintf("dependency edge references unknown work item: %s", itemID)).
		WithSuggestion("Check the work item identifiers in the dependency list").
		WithSuggestion("Remove edges that point at items outside this planning run")
}

// NewInvalidIncrementError creates an error for a malformed program increment
func NewInvalidIncrementError(details string) *PlanError {
	return New(ErrCodeInputBadIncrement, fmt.Sprintf("invalid program increment: %s", details)).
		WithSuggestion("Ensure the increment end date is after the start date")
}

// NewInputFileError creates an error for an unreadable planning input file
func NewInputFileError(path string, cause error) *PlanError {
	return Wrap(ErrCodeInputFileNotFound, fmt.Sprintf("planning input file not found: %s", path), cause).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Run 'artplan plan --help' for the expected input layout")
}
