package topology

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash computes a hash of the graph's nodes and edges for change
// detection. Metadata is excluded so that regenerating an identical graph
// at a later time produces the same hash.
func (g *Graph) ComputeHash() string {
	type hashableGraph struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}

	h := hashableGraph{
		Nodes: g.Nodes,
		Edges: g.Edges,
	}

	data, err := json.Marshal(h)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

// SetHash computes and sets the RenderHash field
func (g *Graph) SetHash() {
	g.Metadata.RenderHash = g.ComputeHash()
}

// HasChanged returns true if the graph differs from the previous hash
func (g *Graph) HasChanged(previousHash string) bool {
	if previousHash == "" {
		return true
	}
	return g.ComputeHash() != previousHash
}
