package domain

import (
	"fmt"
	"strings"
)

// ItemID represents a unique, stable identifier for a work item.
// This is a value object that enforces valid ID formats.
type ItemID string

// maxItemIDLength is the maximum allowed length for a work item ID
const maxItemIDLength = 100

// NewItemID creates a new ItemID value object with validation
func NewItemID(value string) (ItemID, error) {
	id := ItemID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks if the item ID is valid.
// IDs come from external trackers, so the format is deliberately loose:
// non-empty, no surrounding whitespace, bounded length.
func (i ItemID) Validate() error {
	s := string(i)

	if s == "" {
		return fmt.Errorf("work item ID cannot be empty")
	}

	if len(s) > maxItemIDLength {
		return fmt.Errorf("work item ID %q exceeds maximum length of %d characters", s, maxItemIDLength)
	}

	if strings.TrimSpace(s) != s {
		return fmt.Errorf("work item ID %q cannot have leading or trailing whitespace", s)
	}

	return nil
}

// String returns the string representation
func (i ItemID) String() string {
	return string(i)
}
