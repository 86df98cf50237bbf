package layout

import (
	"fmt"
	"time"

	"github.com/chazu/spyglass/pkg/metrics"
	"github.com/chazu/spyglass/pkg/topology"
)

// Strategy selects a layout algorithm
type Strategy string

const (
	StrategyHierarchical  Strategy = "hierarchical"
	StrategyForceDirected Strategy = "force"
	StrategyCircular      Strategy = "circular"
	StrategyGrid          Strategy = "grid"
)

// Options bundles the per-strategy configuration. Zero values are not
// usable defaults; start from DefaultOptions and override fields.
type Options struct {
	Hierarchical HierarchicalOptions
	Force        ForceOptions
	Circular     CircularOptions
	Grid         GridOptions
}

// DefaultOptions returns the default configuration for every strategy
func DefaultOptions() Options {
	return Options{
		Hierarchical: DefaultHierarchicalOptions(),
		Force:        DefaultForceOptions(),
		Circular:     DefaultCircularOptions(),
		Grid:         DefaultGridOptions(),
	}
}

// Apply positions nodes under the selected strategy and returns a new
// node slice; the input nodes and edges are not mutated, and only
// Position differs between input and output. An unrecognized strategy is
// a caller programming error and fails fast.
func Apply(nodes []topology.Node, edges []topology.Edge, strategy Strategy, opts Options) ([]topology.Node, error) {
	start := time.Now()

	out := make([]topology.Node, len(nodes))
	copy(out, nodes)

	switch strategy {
	case StrategyHierarchical:
		applyHierarchical(out, edges, opts.Hierarchical)
	case StrategyForceDirected:
		applyForceDirected(out, edges, opts.Force)
	case StrategyCircular:
		applyCircular(out, opts.Circular)
	case StrategyGrid:
		applyGrid(out, opts.Grid)
	default:
		return nil, fmt.Errorf("unknown layout strategy: %q", strategy)
	}

	metrics.RecordLayout(string(strategy), time.Since(start).Seconds())
	return out, nil
}

// indexByID maps node ids to slice positions for edge resolution. Edges
// referencing unknown endpoints are skipped by every strategy.
func indexByID(nodes []topology.Node) map[string]int {
	idx := make(map[string]int, len(nodes))
	for i := range nodes {
		idx[nodes[i].ID] = i
	}
	return idx
}
