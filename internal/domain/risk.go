package domain

import "fmt"

// RiskLevel classifies the delivery risk of an iteration plan.
type RiskLevel string

// Valid risk levels
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Validate checks if the risk level is valid
func (r RiskLevel) Validate() error {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return nil
	default:
		return fmt.Errorf("invalid risk level %q: must be low, medium, or high", string(r))
	}
}

// String returns the string representation
func (r RiskLevel) String() string {
	return string(r)
}

// rank orders risk levels for comparison (higher = riskier)
func (r RiskLevel) rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// IsHigherThan reports whether this risk level exceeds another.
func (r RiskLevel) IsHigherThan(other RiskLevel) bool {
	return r.rank() > other.rank()
}
