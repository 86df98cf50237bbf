package topology

import (
	"github.com/sourcegraph/conc/pool"

	"github.com/chazu/spyglass/pkg/resource"
)

// nodeIndex resolves references against the nodes of the snapshot being
// built. Resolution never reaches outside the input collection.
type nodeIndex struct {
	// ids holds every node id in the graph
	ids map[string]struct{}

	// byName resolves a kind + namespace + name reference to a node id
	byName map[nameRef]string
}

type nameRef struct {
	kind      resource.Kind
	namespace string
	name      string
}

type edgeKey struct {
	source   string
	target   string
	edgeType EdgeType
}

func newNodeIndex(resources []resource.Resource) *nodeIndex {
	idx := &nodeIndex{
		ids:    make(map[string]struct{}, len(resources)),
		byName: make(map[nameRef]string, len(resources)),
	}
	for i := range resources {
		r := &resources[i]
		id := resource.NodeID(*r)
		idx.ids[id] = struct{}{}
		idx.byName[nameRef{kind: r.Kind, namespace: r.Metadata.Namespace, name: r.Metadata.Name}] = id
	}
	return idx
}

func (idx *nodeIndex) has(id string) bool {
	_, ok := idx.ids[id]
	return ok
}

func (idx *nodeIndex) resolve(kind resource.Kind, namespace, name string) (string, bool) {
	id, ok := idx.byName[nameRef{kind: kind, namespace: namespace, name: name}]
	return id, ok
}

// relationshipRule is one independent inference pass over the snapshot
type relationshipRule func(resources []resource.Resource, idx *nodeIndex) []Edge

// relationshipRules lists every rule in the fixed order their results are
// merged. Rules are order-insensitive among themselves; the fixed order
// only keeps the merged edge list deterministic.
var relationshipRules = []relationshipRule{
	ownershipEdges,
	exposureEdges,
	routingEdges,
	mountEdges,
	networkPolicyEdges,
}

// extractEdges runs every rule and merges the results. Rules are
// independent, so they run concurrently; each writes its own result slot
// and the merge walks slots in rule order. Edge identity is set-like on
// (source, target, type): the first occurrence wins and later duplicates,
// such as repeated owner references, are dropped.
func extractEdges(resources []resource.Resource, idx *nodeIndex) []Edge {
	results := make([][]Edge, len(relationshipRules))

	p := pool.New()
	for i, rule := range relationshipRules {
		p.Go(func() {
			results[i] = rule(resources, idx)
		})
	}
	p.Wait()

	seen := make(map[edgeKey]struct{})
	edges := []Edge{}
	for _, batch := range results {
		for _, e := range batch {
			key := edgeKey{source: e.Source, target: e.Target, edgeType: e.Type}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// ownershipEdges emits owner -> resource for every owner reference whose
// UID is a known node id. A resource with multiple owners yields one edge
// per owner.
func ownershipEdges(resources []resource.Resource, idx *nodeIndex) []Edge {
	var edges []Edge
	for i := range resources {
		r := &resources[i]
		target := resource.NodeID(*r)
		for _, ref := range r.Metadata.OwnerReferences {
			source := string(ref.UID)
			if !idx.has(source) {
				continue
			}
			edges = append(edges, Edge{
				ID:     edgeID(source, target),
				Source: source,
				Target: target,
				Type:   EdgeOwns,
			})
		}
	}
	return edges
}

// exposureEdges emits Service -> Pod for every pod a service selector
// matches. A pod matches only when every selector key equals the
// corresponding pod label; an empty selector matches nothing.
func exposureEdges(resources []resource.Resource, idx *nodeIndex) []Edge {
	var edges []Edge
	for i := range resources {
		svc := &resources[i]
		if svc.Kind != resource.KindService || svc.Service == nil {
			continue
		}
		if len(svc.Service.Selector) == 0 {
			continue
		}
		source := resource.NodeID(*svc)
		for j := range resources {
			pod := &resources[j]
			if pod.Kind != resource.KindPod {
				continue
			}
			if !matchesSelector(svc.Service.Selector, pod.Metadata.Labels) {
				continue
			}
			target := resource.NodeID(*pod)
			edges = append(edges, Edge{
				ID:       edgeID(source, target),
				Source:   source,
				Target:   target,
				Type:     EdgeExposes,
				Animated: true,
			})
		}
	}
	return edges
}

// routingEdges emits Ingress -> Service for every HTTP path whose backend
// resolves to a service in the same namespace, labeled with the path.
func routingEdges(resources []resource.Resource, idx *nodeIndex) []Edge {
	var edges []Edge
	for i := range resources {
		ing := &resources[i]
		if ing.Kind != resource.KindIngress || ing.Ingress == nil {
			continue
		}
		source := resource.NodeID(*ing)
		for _, rule := range ing.Ingress.Rules {
			for _, path := range rule.Paths {
				if path.ServiceName == "" {
					continue
				}
				target, ok := idx.resolve(resource.KindService, ing.Metadata.Namespace, path.ServiceName)
				if !ok {
					continue
				}
				edges = append(edges, Edge{
					ID:       edgeID(source, target),
					Source:   source,
					Target:   target,
					Type:     EdgeRoutes,
					Label:    path.Path,
					Animated: true,
				})
			}
		}
	}
	return edges
}

// mountEdges emits Pod -> object for every volume that resolves to a
// ConfigMap, Secret, or PersistentVolumeClaim in the pod's namespace,
// labeled with the volume name.
func mountEdges(resources []resource.Resource, idx *nodeIndex) []Edge {
	var edges []Edge
	for i := range resources {
		pod := &resources[i]
		if pod.Kind != resource.KindPod || pod.Pod == nil {
			continue
		}
		source := resource.NodeID(*pod)
		for _, vol := range pod.Pod.Volumes {
			kind, name := volumeTarget(vol)
			if name == "" {
				continue
			}
			target, ok := idx.resolve(kind, pod.Metadata.Namespace, name)
			if !ok {
				continue
			}
			edges = append(edges, Edge{
				ID:     edgeID(source, target),
				Source: source,
				Target: target,
				Type:   EdgeMounts,
				Label:  vol.Name,
			})
		}
	}
	return edges
}

func volumeTarget(vol resource.Volume) (resource.Kind, string) {
	switch {
	case vol.ConfigMap != "":
		return resource.KindConfigMap, vol.ConfigMap
	case vol.Secret != "":
		return resource.KindSecret, vol.Secret
	case vol.PersistentVolumeClaim != "":
		return resource.KindPersistentVolumeClaim, vol.PersistentVolumeClaim
	default:
		return resource.KindOther, ""
	}
}

// networkPolicyEdges emits NetworkPolicy -> Pod for every same-namespace
// pod the policy's podSelector matches. A policy declaring no ingress and
// no egress rules is default-deny and emits Denies; otherwise Allows.
func networkPolicyEdges(resources []resource.Resource, idx *nodeIndex) []Edge {
	var edges []Edge
	for i := range resources {
		np := &resources[i]
		if np.Kind != resource.KindNetworkPolicy || np.NetworkPolicy == nil {
			continue
		}
		if len(np.NetworkPolicy.PodSelector) == 0 {
			continue
		}
		edgeType := EdgeAllows
		if !np.NetworkPolicy.HasIngressRules && !np.NetworkPolicy.HasEgressRules {
			edgeType = EdgeDenies
		}
		source := resource.NodeID(*np)
		for j := range resources {
			pod := &resources[j]
			if pod.Kind != resource.KindPod || pod.Metadata.Namespace != np.Metadata.Namespace {
				continue
			}
			if !matchesSelector(np.NetworkPolicy.PodSelector, pod.Metadata.Labels) {
				continue
			}
			target := resource.NodeID(*pod)
			edges = append(edges, Edge{
				ID:     edgeID(source, target),
				Source: source,
				Target: target,
				Type:   edgeType,
			})
		}
	}
	return edges
}

// matchesSelector reports whether every selector key equals the
// corresponding label value. An empty selector matches nothing.
func matchesSelector(selector, labels map[string]string) bool {
	for key, value := range selector {
		if labels[key] != value {
			return false
		}
	}
	return len(selector) > 0
}
