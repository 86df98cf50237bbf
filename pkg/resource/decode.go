package resource

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// FromUnstructured decodes a snapshot of raw objects into typed records,
// preserving input order. Malformed or absent fields degrade to zero
// values; decoding never fails.
func FromUnstructured(objs []unstructured.Unstructured) []Resource {
	resources := make([]Resource, 0, len(objs))
	for i := range objs {
		resources = append(resources, decodeObject(&objs[i]))
	}
	return resources
}

func decodeObject(obj *unstructured.Unstructured) Resource {
	r := Resource{
		Kind: ParseKind(obj.GetKind()),
		Metadata: Metadata{
			UID:               obj.GetUID(),
			Name:              obj.GetName(),
			Namespace:         obj.GetNamespace(),
			Labels:            obj.GetLabels(),
			Annotations:       obj.GetAnnotations(),
			CreationTimestamp: obj.GetCreationTimestamp(),
			OwnerReferences:   obj.GetOwnerReferences(),
		},
	}

	switch r.Kind {
	case KindPod:
		r.Pod = decodePod(obj)
	case KindService:
		r.Service = decodeService(obj)
	case KindDeployment:
		r.Deployment = decodeDeployment(obj)
	case KindIngress:
		r.Ingress = decodeIngress(obj)
	case KindNetworkPolicy:
		r.NetworkPolicy = decodeNetworkPolicy(obj)
	}
	return r
}

func decodePod(obj *unstructured.Unstructured) *PodPayload {
	p := &PodPayload{}
	phase, _, _ := unstructured.NestedString(obj.Object, "status", "phase")
	p.Phase = corev1.PodPhase(phase)

	volumes, found, err := unstructured.NestedSlice(obj.Object, "spec", "volumes")
	if err != nil || !found {
		return p
	}
	for _, v := range volumes {
		volMap, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		vol := Volume{}
		vol.Name, _, _ = unstructured.NestedString(volMap, "name")
		vol.ConfigMap, _, _ = unstructured.NestedString(volMap, "configMap", "name")
		vol.Secret, _, _ = unstructured.NestedString(volMap, "secret", "secretName")
		vol.PersistentVolumeClaim, _, _ = unstructured.NestedString(volMap, "persistentVolumeClaim", "claimName")
		p.Volumes = append(p.Volumes, vol)
	}
	return p
}

func decodeService(obj *unstructured.Unstructured) *ServicePayload {
	selector, _, _ := unstructured.NestedStringMap(obj.Object, "spec", "selector")
	return &ServicePayload{Selector: selector}
}

func decodeDeployment(obj *unstructured.Unstructured) *DeploymentPayload {
	d := &DeploymentPayload{}
	d.Replicas, _, _ = unstructured.NestedInt64(obj.Object, "spec", "replicas")

	// A deployment without a status block stays unclassifiable; one with a
	// status but no availableReplicas counts as zero available.
	if _, hasStatus, _ := unstructured.NestedMap(obj.Object, "status"); hasStatus {
		available, _, _ := unstructured.NestedInt64(obj.Object, "status", "availableReplicas")
		d.AvailableReplicas = &available
	}
	return d
}

func decodeIngress(obj *unstructured.Unstructured) *IngressPayload {
	ing := &IngressPayload{}
	rules, found, err := unstructured.NestedSlice(obj.Object, "spec", "rules")
	if err != nil || !found {
		return ing
	}
	for _, raw := range rules {
		ruleMap, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		rule := IngressRule{}
		rule.Host, _, _ = unstructured.NestedString(ruleMap, "host")

		paths, _, _ := unstructured.NestedSlice(ruleMap, "http", "paths")
		for _, rawPath := range paths {
			pathMap, ok := rawPath.(map[string]interface{})
			if !ok {
				continue
			}
			p := IngressPath{}
			p.Path, _, _ = unstructured.NestedString(pathMap, "path")
			p.ServiceName, _, _ = unstructured.NestedString(pathMap, "backend", "service", "name")
			if p.ServiceName == "" {
				// pre-networking/v1 backend shape
				p.ServiceName, _, _ = unstructured.NestedString(pathMap, "backend", "serviceName")
			}
			rule.Paths = append(rule.Paths, p)
		}
		ing.Rules = append(ing.Rules, rule)
	}
	return ing
}

func decodeNetworkPolicy(obj *unstructured.Unstructured) *NetworkPolicyPayload {
	np := &NetworkPolicyPayload{}
	np.PodSelector, _, _ = unstructured.NestedStringMap(obj.Object, "spec", "podSelector", "matchLabels")

	ingress, _, _ := unstructured.NestedSlice(obj.Object, "spec", "ingress")
	np.HasIngressRules = len(ingress) > 0
	egress, _, _ := unstructured.NestedSlice(obj.Object, "spec", "egress")
	np.HasEgressRules = len(egress) > 0
	return np
}
