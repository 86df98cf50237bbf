// Package topology builds positioned-graph inputs from cluster resource
// snapshots. It maps each resource onto a node, infers typed relationship
// edges with independent pattern-matching rules, and exposes integrity
// validation and a render hash for change detection. Positions are
// assigned separately by pkg/layout.
package topology
