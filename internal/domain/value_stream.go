package domain

import "fmt"

// ValueStream classifies the business value a work item delivers.
type ValueStream string

// Valid value streams
const (
	StreamCustomerFacing      ValueStream = "customer-facing"
	StreamRevenueGenerating   ValueStream = "revenue-generating"
	StreamEfficiencyImproving ValueStream = "efficiency-improving"
	StreamTechnicalDebt       ValueStream = "technical-debt"
	StreamInfrastructure      ValueStream = "infrastructure"
)

// AllValueStreams lists every valid stream in a stable order.
func AllValueStreams() []ValueStream {
	return []ValueStream{
		StreamCustomerFacing,
		StreamRevenueGenerating,
		StreamEfficiencyImproving,
		StreamTechnicalDebt,
		StreamInfrastructure,
	}
}

// NewValueStream creates a ValueStream value object with validation
func NewValueStream(value string) (ValueStream, error) {
	v := ValueStream(value)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// Validate checks if the value stream is valid
func (v ValueStream) Validate() error {
	switch v {
	case StreamCustomerFacing, StreamRevenueGenerating, StreamEfficiencyImproving,
		StreamTechnicalDebt, StreamInfrastructure:
		return nil
	default:
		return fmt.Errorf("invalid value stream %q", string(v))
	}
}

// String returns the string representation
func (v ValueStream) String() string {
	return string(v)
}
