package topology

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/chazu/spyglass/pkg/metrics"
	"github.com/chazu/spyglass/pkg/resource"
)

// Builder constructs topology graphs from resource snapshots. It holds no
// state across calls; construct one explicitly and reuse it freely.
type Builder struct {
	log logr.Logger
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithLogger sets the logger used for build diagnostics
func WithLogger(log logr.Logger) BuilderOption {
	return func(b *Builder) {
		b.log = log
	}
}

// NewBuilder creates a new graph builder
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildOption configures a single Build call
type BuildOption func(*buildConfig)

type buildConfig struct {
	namespace string
}

// WithNamespace records the namespace filter the snapshot was taken
// under. It annotates metadata only; the supplied snapshot is mapped
// as-is so the node count always matches the input.
func WithNamespace(namespace string) BuildOption {
	return func(c *buildConfig) {
		c.namespace = namespace
	}
}

// Build maps each resource 1:1, order-preserving, into a node, infers
// relationship edges, and stamps metadata. It is pure aside from reading
// the wall clock and performs no I/O.
func (b *Builder) Build(resources []resource.Resource, clusterName string, opts ...BuildOption) *Graph {
	start := time.Now()

	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	nodes := make([]Node, 0, len(resources))
	index := newNodeIndex(resources)
	for i := range resources {
		nodes = append(nodes, newNode(&resources[i]))
	}

	edges := extractEdges(resources, index)

	g := &Graph{
		Metadata: Metadata{
			ClusterName:   clusterName,
			Namespace:     cfg.namespace,
			GeneratedAt:   time.Now(),
			ResourceCount: len(resources),
		},
		Nodes: nodes,
		Edges: edges,
	}

	metrics.RecordBuild("success", time.Since(start).Seconds())
	b.log.V(1).Info("built topology graph",
		"cluster", clusterName,
		"nodes", len(nodes),
		"edges", len(edges))

	return g
}

// newNode maps one resource onto its graph node. The node id derivation
// lives with the resource model so extraction rules resolve identically.
func newNode(r *resource.Resource) Node {
	return Node{
		ID:   resource.NodeID(*r),
		Type: r.Kind,
		Data: NodeData{
			Label:       r.Metadata.Name,
			Namespace:   r.Metadata.Namespace,
			Status:      resource.Classify(*r),
			Created:     r.Metadata.CreationTimestamp.Time,
			Labels:      r.Metadata.Labels,
			Annotations: r.Metadata.Annotations,
			Resource:    r,
		},
	}
}
