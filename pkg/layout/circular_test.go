package layout

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func TestCircularEquidistantFromCenter(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12, 40} {
		nodes := testNodes(n)
		out, err := Apply(nodes, nil, StrategyCircular, DefaultOptions())
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		opts := DefaultCircularOptions()
		wantRadius := math.Max(opts.MinRadius, opts.RadiusPerNode*float64(n))
		for i, node := range out {
			dx := node.Position.X - opts.CenterX
			dy := node.Position.Y - opts.CenterY
			r := math.Sqrt(dx*dx + dy*dy)
			if math.Abs(r-wantRadius) > 1e-6 {
				t.Errorf("n=%d node %d: radius %f, want %f", n, i, r, wantRadius)
			}
		}
	}
}

func TestCircularAngleSpacing(t *testing.T) {
	n := 8
	out, err := Apply(testNodes(n), nil, StrategyCircular, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := DefaultCircularOptions()
	step := 2 * math.Pi / float64(n)
	for i, node := range out {
		angle := math.Atan2(node.Position.Y-opts.CenterY, node.Position.X-opts.CenterX)
		want := float64(i) * step
		// normalize both into [0, 2π)
		angle = math.Mod(angle+2*math.Pi, 2*math.Pi)
		want = math.Mod(want, 2*math.Pi)
		if math.Abs(angle-want) > 1e-6 {
			t.Errorf("node %d: angle %f, want %f", i, angle, want)
		}
	}
}

func TestCircularRadiusGrowsWithCount(t *testing.T) {
	small, _ := Apply(testNodes(3), nil, StrategyCircular, DefaultOptions())
	large, _ := Apply(testNodes(50), nil, StrategyCircular, DefaultOptions())

	opts := DefaultCircularOptions()
	smallR := math.Hypot(small[0].Position.X-opts.CenterX, small[0].Position.Y-opts.CenterY)
	largeR := math.Hypot(large[0].Position.X-opts.CenterX, large[0].Position.Y-opts.CenterY)
	if math.Abs(smallR-opts.MinRadius) > floatTolerance {
		t.Errorf("Expected small ring to use the radius floor, got %f", smallR)
	}
	if largeR <= smallR {
		t.Errorf("Expected radius to grow with node count, got %f <= %f", largeR, smallR)
	}
}
