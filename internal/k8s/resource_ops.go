package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/giantswarm/kube-console/internal/logging"
)

// WorkloadManager implementation

// ListDeployments lists deployments in the client namespace.
func (c *kubernetesClient) ListDeployments(ctx context.Context) (_ []DeploymentSummary, err error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	c.logOperation(OperationList, c.namespace, "deployments", "")
	ctx, finish := c.startOperation(ctx, OperationList, "deployments", c.namespace)
	defer func() { finish(err) }()

	listStart := time.Now()
	list, err := c.clientset.AppsV1().Deployments(c.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		c.debug("K8s API list failed",
			logging.ResourceType("deployments"),
			logging.Namespace(c.namespace),
			logging.Duration(time.Since(listStart)),
			logging.SanitizedErr(err))
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	c.debug("K8s API list completed",
		logging.ResourceType("deployments"),
		slog.Int("items", len(list.Items)),
		logging.Duration(time.Since(listStart)))

	deployments := make([]DeploymentSummary, 0, len(list.Items))
	for i := range list.Items {
		deployments = append(deployments, deploymentSummary(&list.Items[i]))
	}
	return deployments, nil
}

// CreateDeployment submits a copy of deployment to the client namespace.
func (c *kubernetesClient) CreateDeployment(ctx context.Context, deployment *appsv1.Deployment) (_ *appsv1.Deployment, err error) {
	if deployment == nil {
		return nil, fmt.Errorf("deployment is required")
	}
	if err := c.isOperationAllowed(OperationCreate); err != nil {
		return nil, err
	}
	if err := c.ready(); err != nil {
		return nil, err
	}

	obj := deployment.DeepCopy()
	obj.Namespace = c.namespace

	c.logOperation(OperationCreate, c.namespace, "deployments", obj.Name)
	ctx, finish := c.startOperation(ctx, OperationCreate, "deployments", c.namespace)
	defer func() { finish(err) }()

	created, err := c.clientset.AppsV1().Deployments(c.namespace).Create(ctx, obj, metav1.CreateOptions{
		DryRun: c.dryRunOption(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deployment %q: %w", obj.Name, err)
	}
	return created, nil
}

// CreateDaemonSet submits a copy of daemonSet to the client namespace. The
// daemonset controller schedules one pod on every eligible node.
func (c *kubernetesClient) CreateDaemonSet(ctx context.Context, daemonSet *appsv1.DaemonSet) (_ *appsv1.DaemonSet, err error) {
	if daemonSet == nil {
		return nil, fmt.Errorf("daemonset is required")
	}
	if err := c.isOperationAllowed(OperationDeploy); err != nil {
		return nil, err
	}
	if err := c.ready(); err != nil {
		return nil, err
	}

	obj := daemonSet.DeepCopy()
	obj.Namespace = c.namespace

	c.logOperation(OperationDeploy, c.namespace, "daemonsets", obj.Name)
	ctx, finish := c.startOperation(ctx, OperationDeploy, "daemonsets", c.namespace)
	defer func() { finish(err) }()

	created, err := c.clientset.AppsV1().DaemonSets(c.namespace).Create(ctx, obj, metav1.CreateOptions{
		DryRun: c.dryRunOption(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create daemonset %q: %w", obj.Name, err)
	}
	return created, nil
}

// ScaleDeployment sets spec.replicas on a deployment.
func (c *kubernetesClient) ScaleDeployment(ctx context.Context, name string, replicas int32) (_ string, err error) {
	if replicas < 0 {
		return "", fmt.Errorf("replicas must not be negative, got %d", replicas)
	}
	if err := c.isOperationAllowed(OperationScale); err != nil {
		return "", err
	}
	if err := c.ready(); err != nil {
		return "", err
	}

	c.logOperation(OperationScale, c.namespace, "deployments", name)
	ctx, finish := c.startOperation(ctx, OperationScale, "deployments", c.namespace)
	defer func() { finish(err) }()

	// Patch spec.replicas directly rather than going through the scale subresource.
	patchData := fmt.Sprintf(`{"spec":{"replicas":%d}}`, replicas)
	_, err = c.clientset.AppsV1().Deployments(c.namespace).Patch(ctx, name, types.MergePatchType, []byte(patchData), metav1.PatchOptions{
		DryRun: c.dryRunOption(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to scale deployment %q: %w", name, err)
	}

	return withDryRunSuffix(fmt.Sprintf("deployment.apps/%s scaled", name), c.dryRun), nil
}

// deploymentSummary copies the status counts. apps/v1 status counts are plain
// int32 fields, so an unreported count is indistinguishable from zero and the
// summary pointers are always set.
func deploymentSummary(d *appsv1.Deployment) DeploymentSummary {
	ready := d.Status.ReadyReplicas
	replicas := d.Status.Replicas
	updated := d.Status.UpdatedReplicas
	available := d.Status.AvailableReplicas

	return DeploymentSummary{
		Name:              d.Name,
		ReadyReplicas:     &ready,
		Replicas:          &replicas,
		UpdatedReplicas:   &updated,
		AvailableReplicas: &available,
	}
}
