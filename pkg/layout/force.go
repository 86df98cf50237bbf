package layout

import (
	"math"
	"math/rand"
	"time"

	"github.com/chazu/spyglass/pkg/topology"
)

// ForceOptions configures the force-directed simulation
type ForceOptions struct {
	// Iterations bounds the simulation; cost is O(n² · Iterations)
	Iterations int

	// LinkDistance is the rest length of edge springs
	LinkDistance float64

	// Charge is the repulsion coefficient; negative values repel
	Charge float64

	// CenterX and CenterY fix the canvas center every node is weakly
	// pulled toward
	CenterX float64
	CenterY float64

	// Seed selects a deterministic random source for initial placement.
	// Nil seeds from the wall clock, so runs are not reproducible.
	Seed *int64
}

// DefaultForceOptions returns the default simulation configuration
func DefaultForceOptions() ForceOptions {
	return ForceOptions{
		Iterations:   300,
		LinkDistance: 150,
		Charge:       -300,
		CenterX:      600,
		CenterY:      400,
	}
}

// initial placement box around the center, and spring/step tuning
const (
	initSpreadX    = 1200
	initSpreadY    = 800
	springStrength = 0.05
	centerStrength = 0.01
	minStep        = 1
	maxStep        = 10
)

// applyForceDirected runs the multi-body simulation: every unordered node
// pair repels inversely with squared distance (floored at 1), every edge
// acts as a spring toward its rest length, and every node drifts 1% of
// its offset toward the fixed center per iteration. Displacements are
// capped by a step limit that cools linearly, so positions stay bounded
// and convergence from a given initial placement is deterministic.
func applyForceDirected(nodes []topology.Node, edges []topology.Edge, opts ForceOptions) {
	n := len(nodes)
	if n == 0 {
		return
	}

	var rng *rand.Rand
	if opts.Seed != nil {
		rng = rand.New(rand.NewSource(*opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range nodes {
		xs[i] = opts.CenterX + (rng.Float64()-0.5)*initSpreadX
		ys[i] = opts.CenterY + (rng.Float64()-0.5)*initSpreadY
	}

	idx := indexByID(nodes)

	dx := make([]float64, n)
	dy := make([]float64, n)
	for it := 0; it < opts.Iterations; it++ {
		for i := range dx {
			dx[i] = 0
			dy[i] = 0
		}

		// all-pairs repulsion
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ox := xs[i] - xs[j]
				oy := ys[i] - ys[j]
				d := math.Sqrt(ox*ox + oy*oy)
				if d < 1 {
					d = 1
				}
				f := -opts.Charge / (d * d)
				fx := f * ox / d
				fy := f * oy / d
				dx[i] += fx
				dy[i] += fy
				dx[j] -= fx
				dy[j] -= fy
			}
		}

		// edge springs: attract when stretched past the rest length,
		// repel when compressed
		for _, e := range edges {
			si, ok := idx[e.Source]
			if !ok {
				continue
			}
			ti, ok := idx[e.Target]
			if !ok || si == ti {
				continue
			}
			ox := xs[ti] - xs[si]
			oy := ys[ti] - ys[si]
			d := math.Sqrt(ox*ox + oy*oy)
			if d < 1 {
				d = 1
			}
			f := springStrength * (d - opts.LinkDistance)
			fx := f * ox / d
			fy := f * oy / d
			dx[si] += fx
			dy[si] += fy
			dx[ti] -= fx
			dy[ti] -= fy
		}

		// weak centering pull
		for i := 0; i < n; i++ {
			dx[i] += (opts.CenterX - xs[i]) * centerStrength
			dy[i] += (opts.CenterY - ys[i]) * centerStrength
		}

		// integrate with a cooling step cap
		progress := float64(it) / float64(opts.Iterations)
		limit := maxStep*(1-progress) + minStep
		for i := 0; i < n; i++ {
			mag := math.Sqrt(dx[i]*dx[i] + dy[i]*dy[i])
			if mag > limit {
				scale := limit / mag
				dx[i] *= scale
				dy[i] *= scale
			}
			xs[i] += dx[i]
			ys[i] += dy[i]
		}
	}

	for i := range nodes {
		nodes[i].Position = topology.Position{X: xs[i], Y: ys[i]}
	}
}
