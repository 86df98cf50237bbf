package layout

import (
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/chazu/spyglass/pkg/topology"
)

// RankDir is the axis ranks advance along
type RankDir string

const (
	RankDirTopBottom RankDir = "TB"
	RankDirBottomTop RankDir = "BT"
	RankDirLeftRight RankDir = "LR"
	RankDirRightLeft RankDir = "RL"
)

// HierarchicalOptions configures the layering layout
type HierarchicalOptions struct {
	// NodeWidth and NodeHeight are the node box size the renderer draws
	NodeWidth  float64
	NodeHeight float64

	// NodeSep is the separation between nodes within a rank
	NodeSep float64

	// RankSep is the separation between adjacent ranks
	RankSep float64

	// RankDir selects the axis ranks advance along
	RankDir RankDir

	// MarginX and MarginY offset the whole drawing
	MarginX float64
	MarginY float64
}

// DefaultHierarchicalOptions returns the default layering configuration
func DefaultHierarchicalOptions() HierarchicalOptions {
	return HierarchicalOptions{
		NodeWidth:  180,
		NodeHeight: 80,
		NodeSep:    50,
		RankSep:    120,
		RankDir:    RankDirTopBottom,
		MarginX:    40,
		MarginY:    40,
	}
}

// applyHierarchical layers nodes so every directed edge goes from a lower
// rank to a strictly higher one, orders each rank with one barycenter
// pass to reduce crossings, and places ranks along the configured axis.
// Edges that would close a cycle, self-loops, and edges with unknown
// endpoints do not participate in layering.
func applyHierarchical(nodes []topology.Node, edges []topology.Edge, opts HierarchicalOptions) {
	if len(nodes) == 0 {
		return
	}

	idx := indexByID(nodes)

	dg := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for i := range nodes {
		_ = dg.AddVertex(nodes[i].ID)
	}
	for _, e := range edges {
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		// duplicate, self-loop, and cycle-closing edges are skipped
		_ = dg.AddEdge(e.Source, e.Target)
	}

	ranks := computeRanks(nodes, dg)

	// Group nodes by rank, input order preserved within each rank
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	layers := make([][]int, maxRank+1)
	for i := range nodes {
		r := ranks[nodes[i].ID]
		layers[r] = append(layers[r], i)
	}

	orderLayers(nodes, layers, dg)
	placeLayers(nodes, layers, opts)
}

// computeRanks assigns each node its longest-path distance from the
// roots. Processing in topological order guarantees predecessors are
// ranked first; the resulting ranks are independent of which valid
// topological order the library returns.
func computeRanks(nodes []topology.Node, dg graph.Graph[string, string]) map[string]int {
	ranks := make(map[string]int, len(nodes))

	order, err := graph.TopologicalSort(dg)
	if err != nil {
		// cannot happen with cycle prevention; rank everything 0
		for i := range nodes {
			ranks[nodes[i].ID] = 0
		}
		return ranks
	}

	preds, err := dg.PredecessorMap()
	if err != nil {
		for i := range nodes {
			ranks[nodes[i].ID] = 0
		}
		return ranks
	}

	for _, id := range order {
		r := 0
		for p := range preds[id] {
			if ranks[p]+1 > r {
				r = ranks[p] + 1
			}
		}
		ranks[id] = r
	}
	return ranks
}

// orderLayers runs one downward barycenter pass: each node is sorted by
// the mean within-rank position of its predecessors. The sort is stable,
// so ties and predecessor-free nodes keep input order and the result is
// deterministic for a given input order.
func orderLayers(nodes []topology.Node, layers [][]int, dg graph.Graph[string, string]) {
	preds, err := dg.PredecessorMap()
	if err != nil {
		return
	}

	pos := make(map[string]int, len(nodes))
	for _, layer := range layers {
		for i, ni := range layer {
			pos[nodes[ni].ID] = i
		}
	}

	for r := 1; r < len(layers); r++ {
		layer := layers[r]
		bary := make(map[int]float64, len(layer))
		for i, ni := range layer {
			id := nodes[ni].ID
			if len(preds[id]) == 0 {
				bary[ni] = float64(i)
				continue
			}
			sum := 0.0
			for p := range preds[id] {
				sum += float64(pos[p])
			}
			bary[ni] = sum / float64(len(preds[id]))
		}
		sort.SliceStable(layer, func(a, b int) bool {
			return bary[layer[a]] < bary[layer[b]]
		})
		for i, ni := range layer {
			pos[nodes[ni].ID] = i
		}
	}
}

// placeLayers converts (rank, within-rank index) into coordinates along
// the configured axis
func placeLayers(nodes []topology.Node, layers [][]int, opts HierarchicalOptions) {
	maxRank := len(layers) - 1
	for r, layer := range layers {
		for i, ni := range layer {
			var x, y float64
			switch opts.RankDir {
			case RankDirBottomTop:
				x = opts.MarginX + float64(i)*(opts.NodeWidth+opts.NodeSep)
				y = opts.MarginY + float64(maxRank-r)*(opts.NodeHeight+opts.RankSep)
			case RankDirLeftRight:
				x = opts.MarginX + float64(r)*(opts.NodeWidth+opts.RankSep)
				y = opts.MarginY + float64(i)*(opts.NodeHeight+opts.NodeSep)
			case RankDirRightLeft:
				x = opts.MarginX + float64(maxRank-r)*(opts.NodeWidth+opts.RankSep)
				y = opts.MarginY + float64(i)*(opts.NodeHeight+opts.NodeSep)
			default: // RankDirTopBottom
				x = opts.MarginX + float64(i)*(opts.NodeWidth+opts.NodeSep)
				y = opts.MarginY + float64(r)*(opts.NodeHeight+opts.RankSep)
			}
			nodes[ni].Position = topology.Position{X: x, Y: y}
		}
	}
}
