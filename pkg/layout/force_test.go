package layout

import (
	"math"
	"testing"
)

func forceOpts(seed int64, iterations int) Options {
	opts := DefaultOptions()
	opts.Force.Seed = &seed
	opts.Force.Iterations = iterations
	return opts
}

func TestForceSeededReproducibility(t *testing.T) {
	nodes := testNodes(8)
	edges := chainEdges(nodes)

	first, err := Apply(nodes, edges, StrategyForceDirected, forceOpts(7, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Apply(nodes, edges, StrategyForceDirected, forceOpts(7, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i].Position != second[i].Position {
			t.Errorf("node %d: %+v vs %+v with the same seed",
				i, first[i].Position, second[i].Position)
		}
	}
}

func TestForceSeedsDiffer(t *testing.T) {
	nodes := testNodes(8)
	edges := chainEdges(nodes)

	first, _ := Apply(nodes, edges, StrategyForceDirected, forceOpts(1, 10))
	second, _ := Apply(nodes, edges, StrategyForceDirected, forceOpts(2, 10))

	same := true
	for i := range first {
		if first[i].Position != second[i].Position {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different seeds to produce different placements")
	}
}

func TestForceStaysBounded(t *testing.T) {
	nodes := testNodes(15)
	edges := chainEdges(nodes)

	for _, iterations := range []int{50, 300, 600} {
		out, err := Apply(nodes, edges, StrategyForceDirected, forceOpts(11, iterations))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		opts := DefaultForceOptions()
		for i, node := range out {
			d := math.Hypot(node.Position.X-opts.CenterX, node.Position.Y-opts.CenterY)
			if math.IsNaN(d) || math.IsInf(d, 0) {
				t.Fatalf("iterations=%d node %d: position diverged to %+v", iterations, i, node.Position)
			}
			// generous bound: the centering pull keeps the cloud near
			// the canvas center regardless of iteration count
			if d > 5000 {
				t.Errorf("iterations=%d node %d: %f from center", iterations, i, d)
			}
		}
	}
}

func TestForceSingleNode(t *testing.T) {
	out, err := Apply(testNodes(1), nil, StrategyForceDirected, forceOpts(3, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// one node drifts toward the center with nothing repelling it
	opts := DefaultForceOptions()
	d := math.Hypot(out[0].Position.X-opts.CenterX, out[0].Position.Y-opts.CenterY)
	if d > initSpreadX {
		t.Errorf("Expected lone node near center, got distance %f", d)
	}
}

func TestForceCoincidentNodes(t *testing.T) {
	// zero iterations keeps the random init; one iteration exercises the
	// distance floor when nodes start close together
	nodes := testNodes(6)
	out, err := Apply(nodes, nil, StrategyForceDirected, forceOpts(5, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, node := range out {
		if math.IsNaN(node.Position.X) || math.IsNaN(node.Position.Y) {
			t.Errorf("node %d: NaN position", i)
		}
	}
}

func TestForceIgnoresDanglingEdges(t *testing.T) {
	nodes := testNodes(3)
	edges := chainEdges(nodes)
	edges = append(edges, edges[0])
	edges[len(edges)-1].Target = "missing"

	if _, err := Apply(nodes, edges, StrategyForceDirected, forceOpts(9, 10)); err != nil {
		t.Errorf("Expected dangling edge to be skipped, got %v", err)
	}
}
