package domain

import (
	"fmt"
	"strings"
)

// TeamID represents a unique identifier for a delivery team.
type TeamID string

const maxTeamIDLength = 100

// NewTeamID creates a new TeamID value object with validation
func NewTeamID(value string) (TeamID, error) {
	id := TeamID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks if the team ID is valid
func (t TeamID) Validate() error {
	s := string(t)

	if s == "" {
		return fmt.Errorf("team ID cannot be empty")
	}

	if len(s) > maxTeamIDLength {
		return fmt.Errorf("team ID %q exceeds maximum length of %d characters", s, maxTeamIDLength)
	}

	if strings.TrimSpace(s) != s {
		return fmt.Errorf("team ID %q cannot have leading or trailing whitespace", s)
	}

	return nil
}

// String returns the string representation
func (t TeamID) String() string {
	return string(t)
}
