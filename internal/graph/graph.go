// Package graph builds and validates the work item dependency graph.
//
// The graph is a derived, read-only view over work items and dependency
// edges: adjacency lists keyed by item identifier, detected cycles, the
// critical path over hard edges, and aggregate statistics. Everything
// downstream of the validator consumes this view instead of raw edges.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
)

// CycleSeverity classifies a detected cycle
type CycleSeverity string

const (
	// SeverityError marks a cycle made entirely of hard edges. Hard
	// cycles make the graph invalid and block allocation.
	SeverityError CycleSeverity = "error"
	// SeverityWarning marks a cycle that involves at least one soft
	// edge. Soft edges never block allocation, so the cycle is
	// advisory risk information only.
	SeverityWarning CycleSeverity = "warning"
)

// Cycle records one dependency cycle found in the graph
type Cycle struct {
	Items    []domain.ItemID `json:"items" yaml:"items"`
	Severity CycleSeverity   `json:"severity" yaml:"severity"`
}

func (c Cycle) String() string {
	parts := make([]string, 0, len(c.Items)+1)
	for _, id := range c.Items {
		parts = append(parts, id.String())
	}
	if len(c.Items) > 0 {
		parts = append(parts, c.Items[0].String())
	}
	return strings.Join(parts, " -> ")
}

// Validation holds the outcome of graph validation
type Validation struct {
	IsValid  bool     `json:"is_valid" yaml:"is_valid"`
	Issues   []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Stats holds aggregate statistics about the graph
type Stats struct {
	Nodes         int             `json:"nodes" yaml:"nodes"`
	Edges         int             `json:"edges" yaml:"edges"`
	HardEdges     int             `json:"hard_edges" yaml:"hard_edges"`
	SoftEdges     int             `json:"soft_edges" yaml:"soft_edges"`
	AverageFanOut float64         `json:"average_fan_out" yaml:"average_fan_out"`
	RootItems     []domain.ItemID `json:"root_items,omitempty" yaml:"root_items,omitempty"`
}

// Graph is the validated dependency view over a set of work items.
// It is read-only after Validate returns.
type Graph struct {
	items map[domain.ItemID]art.WorkItem
	order []domain.ItemID

	// out maps an item to the edges it originates (item requires target).
	out map[domain.ItemID][]art.DependencyEdge
	// in maps an item to the edges pointing at it (item blocks source).
	in map[domain.ItemID][]art.DependencyEdge

	Cycles             []Cycle         `json:"cycles,omitempty" yaml:"cycles,omitempty"`
	CriticalPath       []domain.ItemID `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`
	CriticalPathPoints float64         `json:"critical_path_points" yaml:"critical_path_points"`
	Stats              Stats           `json:"stats" yaml:"stats"`
	Validation         Validation      `json:"validation" yaml:"validation"`
}

// Validate builds the dependency graph for the given items and edges.
// The returned graph is marked invalid rather than erroring out, so
// callers can report every problem at once; the allocator treats an
// invalid graph as a hard precondition failure.
func Validate(items []art.WorkItem, edges []art.DependencyEdge) *Graph {
	g := &Graph{
		items: make(map[domain.ItemID]art.WorkItem, len(items)),
		order: make([]domain.ItemID, 0, len(items)),
		out:   make(map[domain.ItemID][]art.DependencyEdge),
		in:    make(map[domain.ItemID][]art.DependencyEdge),
	}
	g.Validation.IsValid = true

	for _, item := range items {
		if _, dup := g.items[item.ID]; dup {
			g.fail("duplicate work item %q", item.ID)
			continue
		}
		g.items[item.ID] = item
		g.order = append(g.order, item.ID)

		if item.Estimate < 0 {
			g.fail("work item %q has negative estimated size %g", item.ID, item.Estimate)
		} else if item.Kind.RequiresEstimate() && !item.HasEstimate() {
			g.fail("work item %q requires an estimated size for capacity math", item.ID)
		}
	}

	for _, edge := range edges {
		if _, ok := g.items[edge.Source]; !ok {
			g.fail("edge references unknown work item %q", edge.Source)
			continue
		}
		if _, ok := g.items[edge.Target]; !ok {
			g.fail("edge references unknown work item %q", edge.Target)
			continue
		}
		if edge.Source == edge.Target {
			g.fail("work item %q cannot depend on itself", edge.Source)
			continue
		}
		g.out[edge.Source] = append(g.out[edge.Source], edge)
		g.in[edge.Target] = append(g.in[edge.Target], edge)
	}

	g.detectCycles()
	g.computeCriticalPath()
	g.computeStats()

	return g
}

func (g *Graph) fail(format string, args ...any) {
	g.Validation.IsValid = false
	g.Validation.Issues = append(g.Validation.Issues, fmt.Sprintf(format, args...))
}

func (g *Graph) warn(format string, args ...any) {
	g.Validation.Warnings = append(g.Validation.Warnings, fmt.Sprintf(format, args...))
}

// IsValid reports whether the graph passed validation.
func (g *Graph) IsValid() bool {
	return g.Validation.IsValid
}

// Item looks up a work item by ID.
func (g *Graph) Item(id domain.ItemID) (art.WorkItem, bool) {
	item, ok := g.items[id]
	return item, ok
}

// Items returns the work items in their original input order.
func (g *Graph) Items() []art.WorkItem {
	items := make([]art.WorkItem, 0, len(g.order))
	for _, id := range g.order {
		items = append(items, g.items[id])
	}
	return items
}

// HardDependencies returns the items the given item hard-depends on,
// sorted by ID for determinism.
func (g *Graph) HardDependencies(id domain.ItemID) []domain.ItemID {
	return g.dependencies(id, true)
}

// SoftDependencies returns the items the given item soft-depends on,
// sorted by ID for determinism.
func (g *Graph) SoftDependencies(id domain.ItemID) []domain.ItemID {
	return g.dependencies(id, false)
}

func (g *Graph) dependencies(id domain.ItemID, hard bool) []domain.ItemID {
	var deps []domain.ItemID
	for _, edge := range g.out[id] {
		if edge.Strength.Blocks() == hard {
			deps = append(deps, edge.Target)
		}
	}
	return sortedUnique(deps)
}

// Dependents returns the items that depend on the given item through
// edges of any strength, sorted by ID.
func (g *Graph) Dependents(id domain.ItemID) []domain.ItemID {
	var deps []domain.ItemID
	for _, edge := range g.in[id] {
		deps = append(deps, edge.Source)
	}
	return sortedUnique(deps)
}

// sortedUnique sorts IDs ascending and drops duplicates, so repeated
// edges between the same pair count once.
func sortedUnique(ids []domain.ItemID) []domain.ItemID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:0]
	var last domain.ItemID
	for i, id := range ids {
		if i > 0 && id == last {
			continue
		}
		out = append(out, id)
		last = id
	}
	return out
}

// HardEdges returns every hard edge in the graph.
func (g *Graph) HardEdges() []art.DependencyEdge {
	var edges []art.DependencyEdge
	for _, id := range g.sortedIDs() {
		for _, edge := range g.out[id] {
			if edge.Strength.Blocks() {
				edges = append(edges, edge)
			}
		}
	}
	return edges
}

// SoftEdges returns every soft edge in the graph.
func (g *Graph) SoftEdges() []art.DependencyEdge {
	var edges []art.DependencyEdge
	for _, id := range g.sortedIDs() {
		for _, edge := range g.out[id] {
			if !edge.Strength.Blocks() {
				edges = append(edges, edge)
			}
		}
	}
	return edges
}

func (g *Graph) sortedIDs() []domain.ItemID {
	ids := make([]domain.ItemID, len(g.order))
	copy(ids, g.order)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (g *Graph) computeStats() {
	edgeCount := 0
	for _, edges := range g.out {
		edgeCount += len(edges)
		for _, edge := range edges {
			if edge.Strength.Blocks() {
				g.Stats.HardEdges++
			} else {
				g.Stats.SoftEdges++
			}
		}
	}

	g.Stats.Nodes = len(g.items)
	g.Stats.Edges = edgeCount
	if g.Stats.Nodes > 0 {
		g.Stats.AverageFanOut = float64(edgeCount) / float64(g.Stats.Nodes)
	}

	for _, id := range g.sortedIDs() {
		if len(g.out[id]) == 0 {
			g.Stats.RootItems = append(g.Stats.RootItems, id)
		}
	}
}
