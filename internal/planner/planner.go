// Package planner orchestrates the full release-train planning run:
// input validation, graph validation, iteration slicing, sequencing,
// allocation, readiness assessment, quality gating, and value analysis.
//
// PlanART is pure from the caller's perspective: no I/O, no wall-clock
// reads, and identical inputs always produce an identical plan.
package planner

import (
	"strings"

	"github.com/artplanhq/artplan/internal/allocate"
	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/errors"
	"github.com/artplanhq/artplan/internal/graph"
	"github.com/artplanhq/artplan/internal/iteration"
	"github.com/artplanhq/artplan/internal/log"
	"github.com/artplanhq/artplan/internal/quality"
	"github.com/artplanhq/artplan/internal/readiness"
	"github.com/artplanhq/artplan/internal/sequence"
	"github.com/artplanhq/artplan/internal/value"
)

// Config carries every planning knob with documented defaults.
// The zero value of any field means "use the default".
type Config struct {
	// IterationLengthDays is the iteration time box in days.
	IterationLengthDays int `json:"iteration_length_days,omitempty" yaml:"iteration_length_days,omitempty"`

	// BufferCapacity is the fraction of capacity withheld from allocation.
	BufferCapacity float64 `json:"buffer_capacity,omitempty" yaml:"buffer_capacity,omitempty"`

	// ReadinessThreshold is the score at or above which a plan is ready.
	ReadinessThreshold float64 `json:"readiness_threshold,omitempty" yaml:"readiness_threshold,omitempty"`

	// ReadinessWeights adjust the readiness category contributions.
	ReadinessWeights readiness.Weights `json:"readiness_weights,omitempty" yaml:"readiness_weights,omitempty"`

	// Quality holds the working-software gate thresholds.
	Quality quality.Options `json:"quality,omitempty" yaml:"quality,omitempty"`

	// ValueWeights are the per-stream impact multipliers.
	ValueWeights value.Weights `json:"value_weights,omitempty" yaml:"value_weights,omitempty"`

	// EnableValueOptimization turns on the value-timing local search.
	EnableValueOptimization bool `json:"enable_value_optimization,omitempty" yaml:"enable_value_optimization,omitempty"`

	// MaxOptimizationPasses bounds the local search. Zero means one
	// pass per iteration.
	MaxOptimizationPasses int `json:"max_optimization_passes,omitempty" yaml:"max_optimization_passes,omitempty"`

	// Logger receives phase-level debug logging. Nil means the global
	// default logger.
	Logger *log.Logger `json:"-" yaml:"-"`
}

// DefaultConfig returns the documented planning defaults.
func DefaultConfig() Config {
	return Config{
		IterationLengthDays: iteration.DefaultLengthDays,
		BufferCapacity:      allocate.DefaultOptions().BufferCapacity,
		ReadinessThreshold:  readiness.DefaultThreshold,
		ReadinessWeights:    readiness.DefaultWeights(),
		Quality:             quality.DefaultOptions(),
		ValueWeights:        value.DefaultWeights(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.IterationLengthDays <= 0 {
		c.IterationLengthDays = d.IterationLengthDays
	}
	if c.BufferCapacity <= 0 {
		c.BufferCapacity = d.BufferCapacity
	}
	if c.ReadinessThreshold <= 0 {
		c.ReadinessThreshold = d.ReadinessThreshold
	}
	zero := readiness.Weights{}
	if c.ReadinessWeights == zero {
		c.ReadinessWeights = d.ReadinessWeights
	}
	if c.Quality == (quality.Options{}) {
		c.Quality = d.Quality
	}
	if c.ValueWeights == nil {
		c.ValueWeights = d.ValueWeights
	}
	return c
}

// Summary condenses the plan for quick human review.
type Summary struct {
	Iterations         int     `json:"iterations" yaml:"iterations"`
	AllocatedItems     int     `json:"allocated_items" yaml:"allocated_items"`
	UnallocatedItems   int     `json:"unallocated_items" yaml:"unallocated_items"`
	TotalPoints        float64 `json:"total_points" yaml:"total_points"`
	TotalCapacity      float64 `json:"total_capacity" yaml:"total_capacity"`
	AverageUtilization float64 `json:"average_utilization" yaml:"average_utilization"`

	// StreamImpact aggregates weighted impact per value stream over the
	// whole plan.
	StreamImpact map[domain.ValueStream]float64 `json:"stream_impact,omitempty" yaml:"stream_impact,omitempty"`

	// Confidence averages the per-iteration value-analysis confidence.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	ReadinessScore float64 `json:"readiness_score" yaml:"readiness_score"`
	IsReady        bool    `json:"is_ready" yaml:"is_ready"`
}

// ARTPlan is the full planning output handed back to the caller.
type ARTPlan struct {
	Increment   art.ProgramIncrement  `json:"increment" yaml:"increment"`
	Iterations  []art.IterationPlan   `json:"iterations" yaml:"iterations"`
	Unallocated []art.UnallocatedItem `json:"unallocated,omitempty" yaml:"unallocated,omitempty"`

	Sequence     []domain.ItemID `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	CriticalPath []domain.ItemID `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`

	Readiness    readiness.Assessment      `json:"readiness" yaml:"readiness"`
	Quality      []quality.Report          `json:"quality,omitempty" yaml:"quality,omitempty"`
	Value        []value.Analysis          `json:"value,omitempty" yaml:"value,omitempty"`
	Optimization *value.OptimizationResult `json:"optimization,omitempty" yaml:"optimization,omitempty"`

	Summary Summary `json:"summary" yaml:"summary"`

	// Fingerprint is the blake3 hash of the canonical plan, computed
	// with this field empty. Equal inputs yield equal fingerprints.
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// PlanART runs the complete planning pipeline. Invalid input and hard
// dependency cycles fail before any allocation is attempted; capacity
// shortfalls never fail the run and surface in the unallocated list.
func PlanART(input *art.PlanningInput, cfg Config) (*ARTPlan, error) {
	cfg = cfg.withDefaults()
	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	g := graph.Validate(input.Items, input.Edges)
	if !g.IsValid() {
		return nil, graphError(g)
	}
	logger.Debug("dependency graph validated",
		"items", g.Stats.Nodes, "edges", g.Stats.Edges, "warnings", len(g.Validation.Warnings))

	iterations, err := iteration.Generate(input.Increment, cfg.IterationLengthDays)
	if err != nil {
		return nil, err
	}

	sequenced, err := sequence.Sequence(g)
	if err != nil {
		return nil, err
	}

	result, err := allocate.Allocate(sequenced, iterations, input.Teams, g,
		allocate.Options{BufferCapacity: cfg.BufferCapacity})
	if err != nil {
		return nil, err
	}
	logger.Debug("allocation complete",
		"iterations", len(result.Iterations), "unallocated", len(result.Unallocated))

	valueOpts := value.Options{
		Weights:               cfg.ValueWeights,
		PlanningConfidence:    planningConfidence(input.Edges),
		MaxOptimizationPasses: cfg.MaxOptimizationPasses,
	}

	plan := &ARTPlan{
		Increment:    input.Increment,
		Iterations:   result.Iterations,
		Unallocated:  result.Unallocated,
		Sequence:     itemIDs(sequenced),
		CriticalPath: g.CriticalPath,
	}

	if cfg.EnableValueOptimization {
		opt := value.OptimizeTiming(result.Iterations, input.Teams, g, valueOpts)
		plan.Iterations = opt.Iterations
		plan.Optimization = &opt
		logger.Debug("value timing optimized",
			"moves", len(opt.Moves), "passes", opt.Passes)
	}

	assessed := &allocate.Result{Iterations: plan.Iterations, Unallocated: plan.Unallocated}
	plan.Readiness = readiness.Assess(assessed, g, readiness.Options{
		Threshold: cfg.ReadinessThreshold,
		Weights:   cfg.ReadinessWeights,
	})
	plan.Quality = quality.ValidateAll(plan.Iterations, g, cfg.Quality)
	plan.Value = value.AnalyzeAll(plan.Iterations, valueOpts)

	plan.Summary = summarize(plan, valueOpts)

	fp, err := art.Fingerprint(plan)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePlanFingerprint,
			"failed to fingerprint the plan", err)
	}
	plan.Fingerprint = fp

	logger.Debug("plan assembled",
		"readiness", plan.Readiness.ReadinessScore, "ready", plan.Readiness.IsReady,
		"fingerprint", fp)
	return plan, nil
}

// graphError maps a failed graph validation onto the error taxonomy:
// hard cycles get their dedicated error, everything else reports every
// offending issue at once.
func graphError(g *graph.Graph) error {
	for _, c := range g.Cycles {
		if c.Severity == graph.SeverityError {
			return errors.NewHardCycleError(c.String())
		}
	}
	return errors.New(errors.ErrCodeGraphInvalid,
		"dependency graph is invalid: "+strings.Join(g.Validation.Issues, "; ")).
		WithSuggestion("Run 'artplan graph' to inspect the validation issues")
}

// planningConfidence averages dependency-edge confidence. Curated edges
// (confidence zero) count as certain; no edges at all means certain.
func planningConfidence(edges []art.DependencyEdge) float64 {
	if len(edges) == 0 {
		return 1
	}
	total := 0.0
	for _, e := range edges {
		if e.Confidence <= 0 || e.Confidence > 1 {
			total += 1
			continue
		}
		total += e.Confidence
	}
	return total / float64(len(edges))
}

func itemIDs(items []art.WorkItem) []domain.ItemID {
	if len(items) == 0 {
		return nil
	}
	ids := make([]domain.ItemID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func summarize(plan *ARTPlan, valueOpts value.Options) Summary {
	s := Summary{
		Iterations:       len(plan.Iterations),
		UnallocatedItems: len(plan.Unallocated),
		ReadinessScore:   plan.Readiness.ReadinessScore,
		IsReady:          plan.Readiness.IsReady,
	}

	for _, it := range plan.Iterations {
		s.AllocatedItems += len(it.Allocations)
		s.TotalPoints += it.TotalPoints
		s.TotalCapacity += it.TotalCapacity
	}
	if s.TotalCapacity > 0 {
		s.AverageUtilization = s.TotalPoints / s.TotalCapacity
	}

	for _, a := range plan.Value {
		s.Confidence += a.Confidence
		for _, b := range a.Streams {
			if s.StreamImpact == nil {
				s.StreamImpact = make(map[domain.ValueStream]float64)
			}
			s.StreamImpact[b.Stream] += b.Impact
		}
	}
	if len(plan.Value) > 0 {
		s.Confidence /= float64(len(plan.Value))
	}

	return s
}
