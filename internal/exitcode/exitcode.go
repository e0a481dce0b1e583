// Package exitcode maps errors onto process exit codes so scripts can
// branch on planning outcomes.
package exitcode

import (
	"os"
	"strings"

	"github.com/artplanhq/artplan/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// InvalidInput indicates the planning input failed validation
	InvalidInput = 3

	// InvalidGraph indicates the dependency graph was rejected (hard cycle,
	// unknown items)
	InvalidGraph = 4

	// NotReady indicates planning succeeded but the plan missed the
	// readiness bar while --strict was set
	NotReady = 5

	// StoreError indicates a plan history database failure
	StoreError = 6

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit
// code. Structured plan errors map by code category; everything else
// falls back to message heuristics.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if planErr, ok := errors.AsPlanError(err); ok {
		code := string(planErr.Code)
		switch {
		case strings.HasPrefix(code, "INPUT-"):
			return InvalidInput
		case strings.HasPrefix(code, "GRAPH-"):
			return InvalidGraph
		case strings.HasPrefix(code, "STORE-"):
			return StoreError
		case strings.HasPrefix(code, "IO-"):
			return GeneralError
		default:
			return GeneralError
		}
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "accepts") {
		return UsageError
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case InvalidInput:
		return "Planning input failed validation"
	case InvalidGraph:
		return "Dependency graph rejected"
	case NotReady:
		return "Plan is below the readiness threshold"
	case StoreError:
		return "Plan history database error"
	case Interrupted:
		return "Cancelled by user"
	default:
		return "Unknown error"
	}
}
