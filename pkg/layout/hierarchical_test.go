package layout

import (
	"testing"

	"github.com/chazu/spyglass/pkg/topology"
)

// ownershipTree builds a deployment -> replicaset -> pods shape
func ownershipTree() ([]topology.Node, []topology.Edge) {
	nodes := testNodes(5)
	edges := []topology.Edge{
		{ID: "n0-n1", Source: "n0", Target: "n1", Type: topology.EdgeOwns},
		{ID: "n1-n2", Source: "n1", Target: "n2", Type: topology.EdgeOwns},
		{ID: "n1-n3", Source: "n1", Target: "n3", Type: topology.EdgeOwns},
		{ID: "n1-n4", Source: "n1", Target: "n4", Type: topology.EdgeOwns},
	}
	return nodes, edges
}

func TestHierarchicalRanksIncrease(t *testing.T) {
	nodes, edges := ownershipTree()

	tests := []struct {
		dir RankDir
		// axis extracts the rank coordinate; increasing must hold
		axis func(topology.Position) float64
	}{
		{RankDirTopBottom, func(p topology.Position) float64 { return p.Y }},
		{RankDirBottomTop, func(p topology.Position) float64 { return -p.Y }},
		{RankDirLeftRight, func(p topology.Position) float64 { return p.X }},
		{RankDirRightLeft, func(p topology.Position) float64 { return -p.X }},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Hierarchical.RankDir = tt.dir
			out, err := Apply(nodes, edges, StrategyHierarchical, opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			pos := make(map[string]topology.Position)
			for _, n := range out {
				pos[n.ID] = n.Position
			}
			for _, e := range edges {
				if tt.axis(pos[e.Target]) <= tt.axis(pos[e.Source]) {
					t.Errorf("edge %s: target rank coordinate %f not past source %f",
						e.ID, tt.axis(pos[e.Target]), tt.axis(pos[e.Source]))
				}
			}
		})
	}
}

func TestHierarchicalSameRankSeparation(t *testing.T) {
	nodes, edges := ownershipTree()
	out, err := Apply(nodes, edges, StrategyHierarchical, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// n2, n3, n4 share a rank: same Y, distinct X
	pos := make(map[string]topology.Position)
	for _, n := range out {
		pos[n.ID] = n.Position
	}
	if pos["n2"].Y != pos["n3"].Y || pos["n3"].Y != pos["n4"].Y {
		t.Errorf("Expected siblings on one rank, got %f %f %f", pos["n2"].Y, pos["n3"].Y, pos["n4"].Y)
	}
	xs := map[float64]bool{}
	for _, id := range []string{"n2", "n3", "n4"} {
		if xs[pos[id].X] {
			t.Errorf("Sibling %s overlaps another at x=%f", id, pos[id].X)
		}
		xs[pos[id].X] = true
	}
}

func TestHierarchicalDeterministic(t *testing.T) {
	nodes, edges := ownershipTree()

	first, err := Apply(nodes, edges, StrategyHierarchical, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Apply(nodes, edges, StrategyHierarchical, DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range first {
			if first[j].Position != again[j].Position {
				t.Fatalf("run %d: node %s moved from %+v to %+v",
					i, first[j].ID, first[j].Position, again[j].Position)
			}
		}
	}
}

func TestHierarchicalToleratesCycles(t *testing.T) {
	nodes := testNodes(3)
	edges := []topology.Edge{
		{ID: "n0-n1", Source: "n0", Target: "n1", Type: topology.EdgeOwns},
		{ID: "n1-n2", Source: "n1", Target: "n2", Type: topology.EdgeOwns},
		// closes a cycle; must be ignored for layering, not break layout
		{ID: "n2-n0", Source: "n2", Target: "n0", Type: topology.EdgeOwns},
	}

	out, err := Apply(nodes, edges, StrategyHierarchical, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := make(map[string]topology.Position)
	for _, n := range out {
		pos[n.ID] = n.Position
	}
	if !(pos["n1"].Y > pos["n0"].Y && pos["n2"].Y > pos["n1"].Y) {
		t.Errorf("Expected acyclic prefix to layer normally: %+v", pos)
	}
}

func TestHierarchicalIgnoresUnknownEndpoints(t *testing.T) {
	nodes := testNodes(2)
	edges := []topology.Edge{
		{ID: "n0-n1", Source: "n0", Target: "n1", Type: topology.EdgeOwns},
		{ID: "ghost", Source: "n0", Target: "missing", Type: topology.EdgeOwns},
	}

	if _, err := Apply(nodes, edges, StrategyHierarchical, DefaultOptions()); err != nil {
		t.Errorf("Expected dangling edge to be skipped, got %v", err)
	}
}

func TestHierarchicalDisconnectedNodes(t *testing.T) {
	// no edges at all: everything lands on rank 0 in input order
	nodes := testNodes(4)
	out, err := Apply(nodes, nil, StrategyHierarchical, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := DefaultHierarchicalOptions()
	for i, n := range out {
		wantX := opts.MarginX + float64(i)*(opts.NodeWidth+opts.NodeSep)
		if n.Position.Y != opts.MarginY {
			t.Errorf("node %d: expected rank-0 y %f, got %f", i, opts.MarginY, n.Position.Y)
		}
		if n.Position.X != wantX {
			t.Errorf("node %d: expected x %f, got %f", i, wantX, n.Position.X)
		}
	}
}
