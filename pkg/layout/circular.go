package layout

import (
	"math"

	"github.com/chazu/spyglass/pkg/topology"
)

// CircularOptions configures the circular placement
type CircularOptions struct {
	// CenterX and CenterY fix the circle center
	CenterX float64
	CenterY float64

	// MinRadius floors the circle radius
	MinRadius float64

	// RadiusPerNode grows the radius with node count so rings stay
	// readable as graphs grow
	RadiusPerNode float64
}

// DefaultCircularOptions returns the default circular configuration
func DefaultCircularOptions() CircularOptions {
	return CircularOptions{
		CenterX:       600,
		CenterY:       400,
		MinRadius:     300,
		RadiusPerNode: 30,
	}
}

// applyCircular places n nodes evenly around a circle of radius
// max(MinRadius, RadiusPerNode·n), at angle 2π·i/n in input order
func applyCircular(nodes []topology.Node, opts CircularOptions) {
	n := len(nodes)
	if n == 0 {
		return
	}

	radius := math.Max(opts.MinRadius, opts.RadiusPerNode*float64(n))
	for i := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		nodes[i].Position = topology.Position{
			X: opts.CenterX + radius*math.Cos(angle),
			Y: opts.CenterY + radius*math.Sin(angle),
		}
	}
}
