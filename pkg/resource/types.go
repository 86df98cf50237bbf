package resource

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// Kind identifies the resource kinds the topology builder understands.
// Anything else is carried as KindOther with metadata only.
type Kind string

const (
	KindPod                   Kind = "Pod"
	KindService               Kind = "Service"
	KindDeployment            Kind = "Deployment"
	KindReplicaSet            Kind = "ReplicaSet"
	KindIngress               Kind = "Ingress"
	KindConfigMap             Kind = "ConfigMap"
	KindSecret                Kind = "Secret"
	KindPersistentVolumeClaim Kind = "PersistentVolumeClaim"
	KindNetworkPolicy         Kind = "NetworkPolicy"
	KindOther                 Kind = "Other"
)

// ParseKind maps a raw kind string onto the known kind set
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindPod, KindService, KindDeployment, KindReplicaSet, KindIngress,
		KindConfigMap, KindSecret, KindPersistentVolumeClaim, KindNetworkPolicy:
		return Kind(s)
	default:
		return KindOther
	}
}

// Metadata is the common shape shared by every resource record.
// Every field is optional; zero values are valid.
type Metadata struct {
	// UID is the cluster-assigned unique identifier, if known
	UID types.UID `json:"uid,omitempty"`

	// Name is the resource name
	Name string `json:"name"`

	// Namespace is empty for cluster-scoped resources
	Namespace string `json:"namespace,omitempty"`

	// Labels attached to the resource
	Labels map[string]string `json:"labels,omitempty"`

	// Annotations attached to the resource
	Annotations map[string]string `json:"annotations,omitempty"`

	// CreationTimestamp is when the resource was created
	CreationTimestamp metav1.Time `json:"creationTimestamp,omitempty"`

	// OwnerReferences link this resource to the controllers that created it
	OwnerReferences []metav1.OwnerReference `json:"ownerReferences,omitempty"`
}

// Resource is a single cluster resource record. Exactly one of the payload
// pointers is set for kinds that carry one; kinds without builder-relevant
// spec or status (ConfigMap, Secret, PersistentVolumeClaim, Other) have
// only Kind and Metadata.
type Resource struct {
	Kind     Kind     `json:"kind"`
	Metadata Metadata `json:"metadata"`

	Pod           *PodPayload           `json:"pod,omitempty"`
	Service       *ServicePayload       `json:"service,omitempty"`
	Deployment    *DeploymentPayload    `json:"deployment,omitempty"`
	Ingress       *IngressPayload       `json:"ingress,omitempty"`
	NetworkPolicy *NetworkPolicyPayload `json:"networkPolicy,omitempty"`
}

// PodPayload carries the Pod fields the builder reads
type PodPayload struct {
	// Phase is the reported lifecycle phase; empty when status is absent
	Phase corev1.PodPhase `json:"phase,omitempty"`

	// Volumes are the pod's declared volumes
	Volumes []Volume `json:"volumes,omitempty"`
}

// Volume is a pod volume reduced to the references the mount rule resolves.
// At most one of the source names is set.
type Volume struct {
	// Name is the volume name within the pod spec
	Name string `json:"name"`

	// ConfigMap is the referenced ConfigMap name, if any
	ConfigMap string `json:"configMap,omitempty"`

	// Secret is the referenced Secret name, if any
	Secret string `json:"secret,omitempty"`

	// PersistentVolumeClaim is the referenced claim name, if any
	PersistentVolumeClaim string `json:"persistentVolumeClaim,omitempty"`
}

// ServicePayload carries the Service fields the builder reads
type ServicePayload struct {
	// Selector is the label selector; an empty selector targets nothing
	Selector map[string]string `json:"selector,omitempty"`
}

// DeploymentPayload carries the Deployment fields the builder reads
type DeploymentPayload struct {
	// Replicas is the declared replica count from spec, defaulting to 0
	Replicas int64 `json:"replicas"`

	// AvailableReplicas is the available count from status; nil means the
	// resource reported no status at all
	AvailableReplicas *int64 `json:"availableReplicas,omitempty"`
}

// IngressPayload carries the Ingress fields the builder reads
type IngressPayload struct {
	Rules []IngressRule `json:"rules,omitempty"`
}

// IngressRule is one host rule with its HTTP paths
type IngressRule struct {
	Host  string        `json:"host,omitempty"`
	Paths []IngressPath `json:"paths,omitempty"`
}

// IngressPath routes one HTTP path to a backend service by name
type IngressPath struct {
	Path        string `json:"path,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
}

// NetworkPolicyPayload carries the NetworkPolicy fields the builder reads
type NetworkPolicyPayload struct {
	// PodSelector matches the pods the policy applies to; an empty
	// selector targets nothing here (the builder does not infer
	// namespace-wide policies)
	PodSelector map[string]string `json:"podSelector,omitempty"`

	// HasIngressRules is true when the policy declares any ingress rules
	HasIngressRules bool `json:"hasIngressRules,omitempty"`

	// HasEgressRules is true when the policy declares any egress rules
	HasEgressRules bool `json:"hasEgressRules,omitempty"`
}

// NodeID derives the stable graph node id for a resource: the UID when the
// cluster assigned one, otherwise a namespace/name composite so ids stay
// deterministic for synthetic or not-yet-persisted records.
func NodeID(r Resource) string {
	if r.Metadata.UID != "" {
		return string(r.Metadata.UID)
	}
	return fmt.Sprintf("%s/%s", r.Metadata.Namespace, r.Metadata.Name)
}
