package k8s

import (
	"context"
	"io"
	"time"

	appsv1 "k8s.io/api/apps/v1"
)

// Client is the cluster adapter used by the console.
type Client interface {
	PodManager
	WorkloadManager

	// Namespace returns the namespace operations are scoped to.
	Namespace() string
}

// PodManager handles pod-specific operations.
type PodManager interface {
	// ListPods lists pods in the client namespace, or in all namespaces.
	ListPods(ctx context.Context, allNamespaces bool) ([]PodSummary, error)

	// DescribePods renders every pod whose name starts with namePrefix,
	// followed by its recent events.
	DescribePods(ctx context.Context, namePrefix string) (string, error)

	// DeletePod deletes a pod and returns a kubectl style confirmation.
	DeletePod(ctx context.Context, name string) (string, error)

	// Exec feeds commands one per line to a shell running in the pod.
	Exec(ctx context.Context, podName string, commands []string, opts ExecOptions) error
}

// WorkloadManager handles deployment and daemonset operations.
type WorkloadManager interface {
	// ListDeployments lists deployments in the client namespace.
	ListDeployments(ctx context.Context) ([]DeploymentSummary, error)

	// CreateDeployment submits a deployment to the client namespace.
	CreateDeployment(ctx context.Context, deployment *appsv1.Deployment) (*appsv1.Deployment, error)

	// CreateDaemonSet submits a daemonset to the client namespace.
	CreateDaemonSet(ctx context.Context, daemonSet *appsv1.DaemonSet) (*appsv1.DaemonSet, error)

	// ScaleDeployment sets the replica count and returns a kubectl style
	// confirmation.
	ScaleDeployment(ctx context.Context, name string, replicas int32) (string, error)
}

// PodSummary holds the pod fields shown in the pod table. Restarts is nil
// when the pod reports no container statuses.
type PodSummary struct {
	Namespace      string
	Name           string
	Phase          string
	Restarts       *int32
	PodIP          string
	NodeName       string
	NominatedNode  string
	ReadinessGates []string
}

// DeploymentSummary holds the deployment fields shown in the deployment table.
// The counts are pointers so that other producers can report them as absent;
// summaries built from apps/v1 objects always set them.
type DeploymentSummary struct {
	Name              string
	ReadyReplicas     *int32
	Replicas          *int32
	UpdatedReplicas   *int32
	AvailableReplicas *int32
}

// ExecOptions configures Exec.
type ExecOptions struct {
	// Stdout receives announcements and STDOUT-prefixed lines.
	Stdout io.Writer

	// Stderr receives STDERR-prefixed lines. Defaults to Stdout.
	Stderr io.Writer

	// PollInterval is the wait before each queued command is sent.
	PollInterval time.Duration

	// Timeout bounds the whole session. Zero means DefaultExecTimeout.
	Timeout time.Duration

	// Container selects the container; empty means the default container.
	Container string
}
