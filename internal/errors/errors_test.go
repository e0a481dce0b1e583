package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPlanErrorFormat(t *testing.T) {
	err := New(ErrCodeGraphHardCycle, "hard dependency cycle detected").
		WithSuggestion("break the cycle").
		WithDocs("https://example.com/docs")

	msg := err.Error()
	if !strings.Contains(msg, "[GRAPH-002]") {
		t.Errorf("error message missing code: %s", msg)
	}
	if !strings.Contains(msg, "break the cycle") {
		t.Errorf("error message missing suggestion: %s", msg)
	}
	if !strings.Contains(msg, "https://example.com/docs") {
		t.Errorf("error message missing docs URL: %s", msg)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(ErrCodeFileReadFailed, "read input", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("wrapped error should include cause: %s", err.Error())
	}
}

func TestHasCode(t *testing.T) {
	inner := New(ErrCodeGraphUnknownItem, "unknown item")
	outer := fmt.Errorf("validating graph: %w", inner)

	if !HasCode(outer, ErrCodeGraphUnknownItem) {
		t.Error("HasCode should find the code through a wrapped chain")
	}
	if HasCode(outer, ErrCodeGraphHardCycle) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(nil, ErrCodeGraphHardCycle) {
		t.Error("HasCode on nil should be false")
	}
}

func TestNamedConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *PlanError
		code ErrorCode
	}{
		{"hard cycle", NewHardCycleError("a -> b -> a"), ErrCodeGraphHardCycle},
		{"unknown item", NewUnknownItemError("item-42"), ErrCodeGraphUnknownItem},
		{"bad increment", NewInvalidIncrementError("end before start"), ErrCodeInputBadIncrement},
		{"input file", NewInputFileError("plan.yaml", fmt.Errorf("no such file")), ErrCodeInputFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if len(tt.err.Suggestions) == 0 {
				t.Error("named constructors should carry suggestions")
			}
		})
	}
}
