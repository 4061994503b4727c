package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 { return &v }

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			limit:    MaxNamespaceLen,
			expected: "",
		},
		{
			name:     "namespace at limit",
			input:    strings.Repeat("n", 20),
			limit:    MaxNamespaceLen,
			expected: strings.Repeat("n", 20),
		},
		{
			name:     "namespace one over limit",
			input:    strings.Repeat("n", 21),
			limit:    MaxNamespaceLen,
			expected: strings.Repeat("n", 20) + "..",
		},
		{
			name:     "pod name at limit",
			input:    strings.Repeat("p", 41),
			limit:    MaxPodNameLen,
			expected: strings.Repeat("p", 41),
		},
		{
			name:     "pod name one over limit",
			input:    strings.Repeat("p", 42),
			limit:    MaxPodNameLen,
			expected: strings.Repeat("p", 41) + "..",
		},
		{
			name:     "deployment name at limit",
			input:    strings.Repeat("d", 31),
			limit:    MaxDeploymentNameLen,
			expected: strings.Repeat("d", 31),
		},
		{
			name:     "deployment name one over limit",
			input:    strings.Repeat("d", 32),
			limit:    MaxDeploymentNameLen,
			expected: strings.Repeat("d", 31) + "..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.limit))
		})
	}
}

func TestPodRow(t *testing.T) {
	t.Run("fully populated pod", func(t *testing.T) {
		row := PodRow(Pod{
			Namespace:      "default",
			Name:           "nginx-7c5ddbdf54-abcde",
			Phase:          "Running",
			Restarts:       int32Ptr(3),
			PodIP:          "10.244.0.12",
			NodeName:       "worker-1",
			NominatedNode:  "worker-2",
			ReadinessGates: []string{"example.com/ready"},
		})

		assert.True(t, strings.HasPrefix(row, "  default"))
		assert.Equal(t, "nginx-7c5ddbdf54-abcde", strings.TrimSpace(row[23:68]))
		assert.Equal(t, "Running", strings.TrimSpace(row[68:78]))
		assert.Equal(t, "3", strings.TrimSpace(row[78:88]))
		assert.Equal(t, "10.244.0.12", strings.TrimSpace(row[88:104]))
		assert.Equal(t, "worker-1", strings.TrimSpace(row[104:124]))
		assert.Equal(t, "worker-2", strings.TrimSpace(row[124:144]))
		assert.Equal(t, "example.com/ready", row[144:])
	})

	t.Run("empty pod uses placeholders", func(t *testing.T) {
		var row string
		require.NotPanics(t, func() { row = PodRow(Pod{}) })

		fields := strings.Fields(row)
		assert.Equal(t, []string{"NA", "NA", "NA", "NA", "NA", "NA", "<None>", "<None>"}, fields)
	})

	t.Run("missing restarts but other fields present", func(t *testing.T) {
		row := PodRow(Pod{Namespace: "default", Name: "web", Phase: "Pending"})
		assert.Equal(t, "NA", strings.TrimSpace(row[78:88]))
	})

	t.Run("zero restarts is not a placeholder", func(t *testing.T) {
		row := PodRow(Pod{Namespace: "default", Name: "web", Restarts: int32Ptr(0)})
		assert.Equal(t, "0", strings.TrimSpace(row[78:88]))
	})

	t.Run("long namespace and name are truncated", func(t *testing.T) {
		row := PodRow(Pod{
			Namespace: strings.Repeat("n", 25),
			Name:      strings.Repeat("p", 50),
		})
		assert.Contains(t, row, strings.Repeat("n", 20)+"..")
		assert.NotContains(t, row, strings.Repeat("n", 21))
		assert.Contains(t, row, strings.Repeat("p", 41)+"..")
		assert.NotContains(t, row, strings.Repeat("p", 42))
	})
}

func TestPodHeader(t *testing.T) {
	header := PodHeader()
	assert.True(t, strings.HasPrefix(header, "  NAMESPACE"))
	assert.Equal(t, "NAME", strings.TrimSpace(header[23:68]))
	assert.True(t, strings.HasSuffix(header, "READINESS GATES"))
}

func TestDeploymentRow(t *testing.T) {
	t.Run("fully populated deployment", func(t *testing.T) {
		row := DeploymentRow(Deployment{
			Name:              "redis",
			ReadyReplicas:     int32Ptr(2),
			Replicas:          int32Ptr(3),
			UpdatedReplicas:   int32Ptr(3),
			AvailableReplicas: int32Ptr(2),
		})
		assert.Equal(t, []string{"redis", "2/3", "3", "2"}, strings.Fields(row))
		assert.Equal(t, "2/3", strings.TrimSpace(row[37:49]))
	})

	t.Run("missing counts use placeholders", func(t *testing.T) {
		var row string
		require.NotPanics(t, func() { row = DeploymentRow(Deployment{}) })
		assert.Equal(t, []string{"NA", "NA/NA", "NA", "NA"}, strings.Fields(row))
	})

	t.Run("long name is truncated", func(t *testing.T) {
		row := DeploymentRow(Deployment{Name: strings.Repeat("d", 40)})
		assert.Contains(t, row, strings.Repeat("d", 31)+"..")
		assert.NotContains(t, row, strings.Repeat("d", 32))
	})
}

func TestTables(t *testing.T) {
	pods := PodTable([]Pod{{Name: "a"}, {Name: "b"}})
	require.Len(t, pods, 4)
	assert.Equal(t, PodsTitle, pods[0])
	assert.Equal(t, PodHeader(), pods[1])

	deployments := DeploymentTable(nil)
	require.Len(t, deployments, 2)
	assert.Equal(t, DeploymentsTitle, deployments[0])
	assert.Equal(t, DeploymentHeader(), deployments[1])
}
