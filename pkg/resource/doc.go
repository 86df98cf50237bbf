// Package resource provides the typed model for cluster resource snapshots
// consumed by the topology builder. It includes the tagged resource record
// (kind plus kind-specific payloads), decoding from unstructured objects,
// and per-resource health classification.
package resource
