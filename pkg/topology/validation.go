package topology

import (
	"fmt"
)

// Validate checks the integrity of the Graph. Builder output always
// passes; it is exposed for callers assembling graphs by hand.
func (g *Graph) Validate() error {
	if g == nil {
		return fmt.Errorf("graph cannot be nil")
	}
	if g.Metadata.ClusterName == "" {
		return fmt.Errorf("graph metadata.clusterName is required")
	}
	if g.Metadata.ResourceCount != len(g.Nodes) {
		return fmt.Errorf("metadata.resourceCount %d does not match node count %d",
			g.Metadata.ResourceCount, len(g.Nodes))
	}

	nodeIDs := make(map[string]bool, len(g.Nodes))
	for _, node := range g.Nodes {
		if node.ID == "" {
			return fmt.Errorf("node ID is required")
		}
		if nodeIDs[node.ID] {
			return fmt.Errorf("duplicate node ID: %s", node.ID)
		}
		nodeIDs[node.ID] = true
	}

	// Edge identity is the (source, target, type) triple
	seen := make(map[edgeKey]bool, len(g.Edges))
	for _, edge := range g.Edges {
		if edge.Source == "" || edge.Target == "" {
			return fmt.Errorf("edge %s: source and target are required", edge.ID)
		}
		if !nodeIDs[edge.Source] {
			return fmt.Errorf("edge %s references non-existent source node: %s", edge.ID, edge.Source)
		}
		if !nodeIDs[edge.Target] {
			return fmt.Errorf("edge %s references non-existent target node: %s", edge.ID, edge.Target)
		}
		key := edgeKey{source: edge.Source, target: edge.Target, edgeType: edge.Type}
		if seen[key] {
			return fmt.Errorf("duplicate edge %s -> %s (%s)", edge.Source, edge.Target, edge.Type)
		}
		seen[key] = true
	}

	return nil
}
