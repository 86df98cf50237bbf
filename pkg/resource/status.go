package resource

import (
	corev1 "k8s.io/api/core/v1"
)

// Status is the coarse health label computed per resource
type Status string

const (
	StatusHealthy Status = "healthy"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusUnknown Status = "unknown"
)

// Classify maps a resource's kind and reported status onto a Status.
// It never fails; anything it cannot interpret is StatusUnknown.
func Classify(r Resource) Status {
	switch r.Kind {
	case KindPod:
		return classifyPod(r.Pod)
	case KindDeployment:
		return classifyDeployment(r.Deployment)
	case KindService:
		// Existence implies health; services carry no phase of their own
		return StatusHealthy
	default:
		return StatusUnknown
	}
}

func classifyPod(p *PodPayload) Status {
	if p == nil || p.Phase == "" {
		return StatusUnknown
	}
	switch p.Phase {
	case corev1.PodRunning, corev1.PodSucceeded:
		return StatusHealthy
	case corev1.PodPending:
		return StatusWarning
	case corev1.PodFailed, corev1.PodUnknown:
		return StatusError
	default:
		return StatusUnknown
	}
}

func classifyDeployment(d *DeploymentPayload) Status {
	if d == nil || d.AvailableReplicas == nil {
		return StatusUnknown
	}
	available := *d.AvailableReplicas
	switch {
	case available >= d.Replicas:
		return StatusHealthy
	case available > 0:
		return StatusWarning
	default:
		return StatusError
	}
}
