package layout

import (
	"math"

	"github.com/chazu/spyglass/pkg/topology"
)

// GridOptions configures the grid placement
type GridOptions struct {
	// CellSize is the spacing between grid cells
	CellSize float64

	// OriginX and OriginY offset the grid away from zero so every
	// coordinate stays positive
	OriginX float64
	OriginY float64
}

// DefaultGridOptions returns the default grid configuration
func DefaultGridOptions() GridOptions {
	return GridOptions{
		CellSize: 200,
		OriginX:  100,
		OriginY:  100,
	}
}

// applyGrid places nodes row-major in a near-square grid with
// ceil(sqrt(n)) columns
func applyGrid(nodes []topology.Node, opts GridOptions) {
	n := len(nodes)
	if n == 0 {
		return
	}

	columns := int(math.Ceil(math.Sqrt(float64(n))))
	for i := range nodes {
		row := i / columns
		col := i % columns
		nodes[i].Position = topology.Position{
			X: opts.OriginX + float64(col)*opts.CellSize,
			Y: opts.OriginY + float64(row)*opts.CellSize,
		}
	}
}
