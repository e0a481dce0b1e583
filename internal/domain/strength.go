package domain

import "fmt"

// DependencyStrength classifies a dependency edge.
// HARD edges block allocation ordering; SOFT edges are advisory risk
// information only and never gate allocation.
type DependencyStrength string

// Valid dependency strengths
const (
	StrengthHard DependencyStrength = "HARD"
	StrengthSoft DependencyStrength = "SOFT"
)

// NewDependencyStrength creates a DependencyStrength value object with validation
func NewDependencyStrength(value string) (DependencyStrength, error) {
	s := DependencyStrength(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks if the strength is valid
func (s DependencyStrength) Validate() error {
	switch s {
	case StrengthHard, StrengthSoft:
		return nil
	default:
		return fmt.Errorf("invalid dependency strength %q: must be HARD or SOFT", string(s))
	}
}

// String returns the string representation
func (s DependencyStrength) String() string {
	return string(s)
}

// Blocks reports whether this strength constrains allocation ordering.
func (s DependencyStrength) Blocks() bool {
	return s == StrengthHard
}
