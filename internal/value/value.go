// Package value classifies allocated work into value streams, scores
// the business impact delivered per iteration, and proposes plan
// adjustments that front-load high-value work.
package value

import (
	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
)

// Weights maps each value stream to its business-impact multiplier.
type Weights map[domain.ValueStream]float64

// DefaultWeights returns the documented stream weights. Customer-facing
// and revenue work count full; internal improvements count less.
func DefaultWeights() Weights {
	return Weights{
		domain.StreamCustomerFacing:      1.0,
		domain.StreamRevenueGenerating:   1.0,
		domain.StreamEfficiencyImproving: 0.7,
		domain.StreamInfrastructure:      0.5,
		domain.StreamTechnicalDebt:       0.4,
	}
}

// Options configures value analysis
type Options struct {
	// Weights are the per-stream impact multipliers. Nil means defaults.
	Weights Weights

	// PlanningConfidence is caller-supplied 0-1 confidence in the
	// planning inputs, typically derived from dependency-edge
	// confidence. Values outside (0, 1] are treated as 1.
	PlanningConfidence float64

	// MaxOptimizationPasses bounds the timing local search. Zero means
	// one pass per iteration.
	MaxOptimizationPasses int
}

// DefaultOptions returns analysis options with documented defaults
func DefaultOptions() Options {
	return Options{
		Weights:            DefaultWeights(),
		PlanningConfidence: 1.0,
	}
}

func (o Options) weights() Weights {
	if o.Weights == nil {
		return DefaultWeights()
	}
	return o.Weights
}

func (o Options) planningConfidence() float64 {
	if o.PlanningConfidence <= 0 || o.PlanningConfidence > 1 {
		return 1.0
	}
	return o.PlanningConfidence
}

// Classification records which stream an item landed in and whether it
// came from an explicit tag or the heuristic fallback.
type Classification struct {
	Item     domain.ItemID      `json:"item" yaml:"item"`
	Stream   domain.ValueStream `json:"stream" yaml:"stream"`
	Explicit bool               `json:"explicit" yaml:"explicit"`
}

// StreamBreakdown aggregates one stream's share of an iteration.
type StreamBreakdown struct {
	Stream domain.ValueStream `json:"stream" yaml:"stream"`
	Items  int                `json:"items" yaml:"items"`
	Points float64            `json:"points" yaml:"points"`
	Impact float64            `json:"impact" yaml:"impact"`
}

// Analysis is the value profile of a single iteration.
type Analysis struct {
	Iteration       string            `json:"iteration" yaml:"iteration"`
	Streams         []StreamBreakdown `json:"streams" yaml:"streams"`
	Classifications []Classification  `json:"classifications,omitempty" yaml:"classifications,omitempty"`
	TotalImpact     float64           `json:"total_impact" yaml:"total_impact"`

	// Confidence blends planning confidence with the fraction of items
	// carrying explicit stream tags.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Classify buckets a work item into a value stream. An explicit,
// valid stream tag wins; otherwise the heuristic applies: user-facing
// stories are customer-facing, infrastructure enablers are
// efficiency-improving, everything else is technical debt.
func Classify(item art.WorkItem) (domain.ValueStream, bool) {
	if item.ValueStream != "" && item.ValueStream.Validate() == nil {
		return item.ValueStream, true
	}
	if item.UserFacing() {
		return domain.StreamCustomerFacing, false
	}
	if item.Enabler != nil && item.Enabler.Category == "infrastructure" {
		return domain.StreamEfficiencyImproving, false
	}
	return domain.StreamTechnicalDebt, false
}

// impactPoints is the size an item contributes to impact math.
// Unestimated items still deliver something, so they count as one point.
func impactPoints(item art.WorkItem) float64 {
	if item.HasEstimate() {
		return item.Estimate
	}
	return 1
}

// Impact scores one item: its size weighted by its stream's multiplier.
func Impact(item art.WorkItem, weights Weights) float64 {
	stream, _ := Classify(item)
	return impactPoints(item) * weights[stream]
}

// AnalyzeIteration profiles the value delivered by one iteration plan.
func AnalyzeIteration(plan art.IterationPlan, opts Options) Analysis {
	weights := opts.weights()
	analysis := Analysis{Iteration: plan.Iteration.Name}

	byStream := make(map[domain.ValueStream]*StreamBreakdown)
	explicit := 0
	for _, a := range plan.Allocations {
		stream, tagged := Classify(a.Item)
		if tagged {
			explicit++
		}
		analysis.Classifications = append(analysis.Classifications, Classification{
			Item:     a.Item.ID,
			Stream:   stream,
			Explicit: tagged,
		})

		b := byStream[stream]
		if b == nil {
			b = &StreamBreakdown{Stream: stream}
			byStream[stream] = b
		}
		b.Items++
		b.Points += impactPoints(a.Item)
		impact := impactPoints(a.Item) * weights[stream]
		b.Impact += impact
		analysis.TotalImpact += impact
	}

	for _, stream := range domain.AllValueStreams() {
		if b, ok := byStream[stream]; ok {
			analysis.Streams = append(analysis.Streams, *b)
		}
	}

	tagFraction := 1.0
	if len(plan.Allocations) > 0 {
		tagFraction = float64(explicit) / float64(len(plan.Allocations))
	}
	analysis.Confidence = (opts.planningConfidence() + tagFraction) / 2

	return analysis
}

// AnalyzeAll profiles every iteration in plan order.
func AnalyzeAll(plans []art.IterationPlan, opts Options) []Analysis {
	analyses := make([]Analysis, len(plans))
	for i, plan := range plans {
		analyses[i] = AnalyzeIteration(plan, opts)
	}
	return analyses
}
