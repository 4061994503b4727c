package k8s

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/utils/ptr"
)

func testDeployment(name string, replicas int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: name},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(replicas),
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": name}},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{"app": name}},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{Name: name, Image: name}},
				},
			},
		},
		Status: appsv1.DeploymentStatus{
			Replicas:          replicas,
			ReadyReplicas:     replicas - 1,
			UpdatedReplicas:   replicas,
			AvailableReplicas: replicas - 1,
		},
	}
}

func TestKubernetesClient_ListDeployments(t *testing.T) {
	client, _ := newTestClient(t, nil, testDeployment("nginx", 3), testDeployment("redis", 1))

	deployments, err := client.ListDeployments(context.Background())
	require.NoError(t, err)
	require.Len(t, deployments, 2)

	byName := map[string]DeploymentSummary{}
	for _, d := range deployments {
		byName[d.Name] = d
	}

	nginx := byName["nginx"]
	require.NotNil(t, nginx.ReadyReplicas)
	assert.Equal(t, int32(2), *nginx.ReadyReplicas)
	assert.Equal(t, int32(3), *nginx.Replicas)
	assert.Equal(t, int32(3), *nginx.UpdatedReplicas)
	assert.Equal(t, int32(2), *nginx.AvailableReplicas)
}

func TestKubernetesClient_ListDeploymentsLogsThroughClientLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client, _ := newTestClient(t, &ClientConfig{Logger: logger}, testDeployment("nginx", 1))

	_, err := client.ListDeployments(context.Background())
	require.NoError(t, err)

	text := buf.String()
	assert.Contains(t, text, "K8s API list completed")
	assert.Contains(t, text, "items=1")
	assert.Contains(t, text, "resource_type=deployments")
}

func TestDeploymentSummary_UnreportedStatusIsZero(t *testing.T) {
	deployment := testDeployment("nginx", 2)
	deployment.Status = appsv1.DeploymentStatus{}

	summary := deploymentSummary(deployment)

	require.NotNil(t, summary.ReadyReplicas)
	require.NotNil(t, summary.Replicas)
	require.NotNil(t, summary.UpdatedReplicas)
	require.NotNil(t, summary.AvailableReplicas)
	assert.Zero(t, *summary.ReadyReplicas)
	assert.Zero(t, *summary.Replicas)
	assert.Zero(t, *summary.UpdatedReplicas)
	assert.Zero(t, *summary.AvailableReplicas)
}

func TestKubernetesClient_CreateDeployment(t *testing.T) {
	t.Run("creates in client namespace", func(t *testing.T) {
		client, clientset := newTestClient(t, &ClientConfig{Namespace: "apps"})
		template := testDeployment("redis", 1)
		template.Namespace = ""

		created, err := client.CreateDeployment(context.Background(), template)
		require.NoError(t, err)
		assert.Equal(t, "redis", created.Name)
		assert.Equal(t, "apps", created.Namespace)
		assert.Empty(t, template.Namespace, "template must not be modified")

		_, err = clientset.AppsV1().Deployments("apps").Get(context.Background(), "redis", metav1.GetOptions{})
		assert.NoError(t, err)
	})

	t.Run("already exists", func(t *testing.T) {
		client, _ := newTestClient(t, nil, testDeployment("redis", 1))

		_, err := client.CreateDeployment(context.Background(), testDeployment("redis", 1))
		require.Error(t, err)
		assert.True(t, apierrors.IsAlreadyExists(err))
		assert.Equal(t, ErrorKindAPI, Classify(err))
	})

	t.Run("nil deployment", func(t *testing.T) {
		client, _ := newTestClient(t, nil)
		_, err := client.CreateDeployment(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("read-only mode", func(t *testing.T) {
		client, _ := newTestClient(t, &ClientConfig{ReadOnly: true})
		_, err := client.CreateDeployment(context.Background(), testDeployment("redis", 1))
		assert.ErrorIs(t, err, ErrOperationNotAllowed)
	})
}

func TestKubernetesClient_CreateDaemonSet(t *testing.T) {
	client, clientset := newTestClient(t, nil)
	daemonSet := &appsv1.DaemonSet{
		ObjectMeta: metav1.ObjectMeta{Name: "node-agent"},
		Spec: appsv1.DaemonSetSpec{
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": "node-agent"}},
		},
	}

	created, err := client.CreateDaemonSet(context.Background(), daemonSet)
	require.NoError(t, err)
	assert.Equal(t, "node-agent", created.Name)

	list, err := clientset.AppsV1().DaemonSets("default").List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestKubernetesClient_ScaleDeployment(t *testing.T) {
	t.Run("patches replicas", func(t *testing.T) {
		client, clientset := newTestClient(t, nil, testDeployment("nginx", 1))

		msg, err := client.ScaleDeployment(context.Background(), "nginx", 4)
		require.NoError(t, err)
		assert.Equal(t, "deployment.apps/nginx scaled", msg)

		d, err := clientset.AppsV1().Deployments("default").Get(context.Background(), "nginx", metav1.GetOptions{})
		require.NoError(t, err)
		assert.Equal(t, int32(4), *d.Spec.Replicas)
	})

	t.Run("scale to zero", func(t *testing.T) {
		client, clientset := newTestClient(t, nil, testDeployment("nginx", 2))

		_, err := client.ScaleDeployment(context.Background(), "nginx", 0)
		require.NoError(t, err)

		d, err := clientset.AppsV1().Deployments("default").Get(context.Background(), "nginx", metav1.GetOptions{})
		require.NoError(t, err)
		assert.Equal(t, int32(0), *d.Spec.Replicas)
	})

	t.Run("negative replicas", func(t *testing.T) {
		client, clientset := newTestClient(t, nil, testDeployment("nginx", 2))

		_, err := client.ScaleDeployment(context.Background(), "nginx", -1)
		assert.Error(t, err)
		assert.Empty(t, clientset.Actions())
	})

	t.Run("missing deployment", func(t *testing.T) {
		client, _ := newTestClient(t, nil)

		_, err := client.ScaleDeployment(context.Background(), "nginx", 2)
		require.Error(t, err)
		assert.True(t, apierrors.IsNotFound(err))
	})

	t.Run("dry run", func(t *testing.T) {
		client, clientset := newTestClient(t, &ClientConfig{DryRun: true}, testDeployment("nginx", 1))

		var dryRun []string
		clientset.PrependReactor("patch", "deployments", func(action k8stesting.Action) (bool, runtime.Object, error) {
			dryRun = action.(k8stesting.PatchActionImpl).PatchOptions.DryRun
			return true, testDeployment("nginx", 1), nil
		})

		msg, err := client.ScaleDeployment(context.Background(), "nginx", 3)
		require.NoError(t, err)
		assert.Equal(t, "deployment.apps/nginx scaled (server dry run)", msg)
		assert.Equal(t, []string{metav1.DryRunAll}, dryRun)
	})
}
