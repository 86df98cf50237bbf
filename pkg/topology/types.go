package topology

import (
	"fmt"
	"time"

	"github.com/chazu/spyglass/pkg/resource"
)

// EdgeType classifies the relationship an edge represents
type EdgeType string

const (
	// EdgeOwns links a resource to one named in its owner references
	EdgeOwns EdgeType = "owns"

	// EdgeManages is reserved for controller-style relationships; no
	// current rule emits it
	EdgeManages EdgeType = "manages"

	// EdgeExposes links a Service to the Pods its selector matches
	EdgeExposes EdgeType = "exposes"

	// EdgeMounts links a Pod to a ConfigMap, Secret, or claim it mounts
	EdgeMounts EdgeType = "mounts"

	// EdgeRoutes links an Ingress to a backend Service
	EdgeRoutes EdgeType = "routes"

	// EdgeAllows links a NetworkPolicy to Pods it permits traffic for
	EdgeAllows EdgeType = "allows"

	// EdgeDenies links a default-deny NetworkPolicy to the Pods it covers
	EdgeDenies EdgeType = "denies"
)

// Position is a node's 2D placement, written only by pkg/layout
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the semantic payload a renderer displays for a node
type NodeData struct {
	// Label is the display name, taken from the resource name
	Label string `json:"label"`

	// Namespace is empty for cluster-scoped resources
	Namespace string `json:"namespace,omitempty"`

	// Status is the classified health of the resource
	Status resource.Status `json:"status"`

	// Created is the resource creation time, zero when unknown
	Created time.Time `json:"created,omitempty"`

	// Labels attached to the source resource
	Labels map[string]string `json:"labels,omitempty"`

	// Annotations attached to the source resource
	Annotations map[string]string `json:"annotations,omitempty"`

	// Resource is an opaque reference back to the source record
	Resource *resource.Resource `json:"-"`
}

// Node is one resource in the topology graph
type Node struct {
	// ID is unique within a graph: the resource UID, or a namespace/name
	// composite when no UID exists
	ID string `json:"id"`

	// Type is the resource kind
	Type resource.Kind `json:"type"`

	// Data is the semantic payload; layout strategies never touch it
	Data NodeData `json:"data"`

	// Position is assigned by a layout pass
	Position Position `json:"position"`
}

// Edge is one typed relationship between two nodes
type Edge struct {
	// ID is the deterministic source-target composite
	ID string `json:"id"`

	// Source and Target are node ids present in the graph
	Source string `json:"source"`
	Target string `json:"target"`

	// Type classifies the relationship
	Type EdgeType `json:"type"`

	// Label is optional display text, e.g. an HTTP path or volume name
	Label string `json:"label,omitempty"`

	// Animated marks traffic-carrying edges for the renderer
	Animated bool `json:"animated,omitempty"`
}

// Metadata describes a built graph
type Metadata struct {
	// ClusterName is the caller-supplied cluster identity
	ClusterName string `json:"clusterName"`

	// Namespace records the namespace filter the snapshot was taken
	// under, if any
	Namespace string `json:"namespace,omitempty"`

	// GeneratedAt is when the graph was built
	GeneratedAt time.Time `json:"generatedAt"`

	// ResourceCount equals the input snapshot length and the node count
	ResourceCount int `json:"resourceCount"`

	// RenderHash is a hash of nodes and edges for change detection
	RenderHash string `json:"renderHash,omitempty"`
}

// Graph is a derived, disposable view of one resource snapshot. It is
// rebuilt in full on every Build call and has no persistent identity.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
}

// edgeID builds the deterministic edge identifier
func edgeID(source, target string) string {
	return fmt.Sprintf("%s-%s", source, target)
}
