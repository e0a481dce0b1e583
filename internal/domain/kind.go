package domain

import "fmt"

// ItemKind represents the kind of a work item.
// This is a value object that enforces valid kind values.
type ItemKind string

// Valid work item kinds
const (
	KindStory   ItemKind = "story"   // User-visible slice of functionality
	KindEnabler ItemKind = "enabler" // Infrastructure/architecture/tech-debt work
	KindFeature ItemKind = "feature" // Larger container of stories
)

// NewItemKind creates a new ItemKind value object with validation
func NewItemKind(value string) (ItemKind, error) {
	k := ItemKind(value)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate checks if the kind is valid
func (k ItemKind) Validate() error {
	switch k {
	case KindStory, KindEnabler, KindFeature:
		return nil
	default:
		return fmt.Errorf("invalid work item kind %q: must be story, enabler, or feature", string(k))
	}
}

// String returns the string representation
func (k ItemKind) String() string {
	return string(k)
}

// RequiresEstimate reports whether capacity math needs an estimated
// size for items of this kind.
func (k ItemKind) RequiresEstimate() bool {
	return k == KindStory
}
