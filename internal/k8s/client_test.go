package k8s

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/giantswarm/kube-console/internal/logging"
)

// MockLogger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Warn(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.Called(msg, args)
}

// Test NewClient function with simplified approach
func TestNewClient(t *testing.T) {
	tests := []struct {
		name              string
		config            *ClientConfig
		expectError       bool
		errorMsg          string
		expectedNamespace string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "client configuration is required",
		},
		{
			name:              "valid config with defaults",
			config:            &ClientConfig{},
			expectedNamespace: "test-namespace",
		},
		{
			name: "valid config with custom values",
			config: &ClientConfig{
				Namespace:  "apps",
				QPSLimit:   50.0,
				BurstLimit: 100,
				Timeout:    60 * time.Second,
				ReadOnly:   true,
				DryRun:     true,
			},
			expectedNamespace: "apps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a temporary kubeconfig file for testing
			tmpDir := t.TempDir()
			kubeconfigPath := filepath.Join(tmpDir, "kubeconfig")

			if tt.config != nil {
				tt.config.KubeconfigPath = kubeconfigPath
				createMinimalKubeconfig(t, kubeconfigPath)
			}

			client, err := NewClient(tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, client)
			assert.NoError(t, client.ready())
			assert.Equal(t, tt.expectedNamespace, client.Namespace())

			// Verify defaults are set correctly
			if tt.config.QPSLimit == 0 {
				assert.Equal(t, float32(20.0), client.qpsLimit)
			} else {
				assert.Equal(t, tt.config.QPSLimit, client.qpsLimit)
			}

			if tt.config.BurstLimit == 0 {
				assert.Equal(t, 30, client.burstLimit)
			} else {
				assert.Equal(t, tt.config.BurstLimit, client.burstLimit)
			}

			if tt.config.Timeout == 0 {
				assert.Equal(t, 30*time.Second, client.timeout)
			} else {
				assert.Equal(t, tt.config.Timeout, client.timeout)
			}

			assert.Equal(t, client.qpsLimit, client.restConfig.QPS)
			assert.Equal(t, client.timeout, client.restConfig.Timeout)
		})
	}
}

func TestNewClient_MissingKubeconfig(t *testing.T) {
	mockLogger := &MockLogger{}
	mockLogger.On("Warn", "unable to load kube-config", mock.Anything).Return().Once()

	client, err := NewClient(&ClientConfig{
		KubeconfigPath: filepath.Join(t.TempDir(), "does-not-exist"),
		Logger:         mockLogger,
	})

	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, DefaultNamespace, client.Namespace())
	assert.ErrorIs(t, client.ready(), ErrNotConnected)
	assert.Equal(t, ErrorKindConnectivity, Classify(client.ready()))
	mockLogger.AssertExpectations(t)
}

func TestNewClient_KubeconfigFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "configs"), 0o755))
	createMinimalKubeconfig(t, filepath.Join(home, "configs", "kubeconfig"))
	t.Setenv("KUBECONFIG", "~/configs/kubeconfig")

	config := &ClientConfig{}
	client, err := NewClient(config)
	require.NoError(t, err)

	assert.NoError(t, client.ready())
	assert.Equal(t, filepath.Join(home, "configs", "kubeconfig"), config.KubeconfigPath)
}

func TestNewClientForClientset(t *testing.T) {
	client := NewClientForClientset(fake.NewSimpleClientset(), nil, nil)
	assert.Equal(t, DefaultNamespace, client.Namespace())
	assert.NoError(t, client.ready())
	assert.Equal(t, float32(DefaultQPSLimit), client.qpsLimit)
}

func TestKubernetesClient_SecurityValidation(t *testing.T) {
	tests := []struct {
		name          string
		readOnly      bool
		dryRun        bool
		operation     string
		expectError   bool
		errorContains string
	}{
		{
			name:      "list in read-only mode",
			readOnly:  true,
			operation: OperationList,
		},
		{
			name:      "describe in read-only mode",
			readOnly:  true,
			operation: OperationDescribe,
		},
		{
			name:      "delete without read-only mode",
			operation: OperationDelete,
		},
		{
			name:          "delete in read-only mode without dry-run",
			readOnly:      true,
			operation:     OperationDelete,
			expectError:   true,
			errorContains: "Delete operations are not allowed in read-only mode",
		},
		{
			name:      "delete in read-only mode with dry-run",
			readOnly:  true,
			dryRun:    true,
			operation: OperationDelete,
		},
		{
			name:          "scale in read-only mode",
			readOnly:      true,
			operation:     OperationScale,
			expectError:   true,
			errorContains: "Scale operations",
		},
		{
			name:          "exec in read-only mode even with dry-run",
			readOnly:      true,
			dryRun:        true,
			operation:     OperationExec,
			expectError:   true,
			errorContains: "Exec operations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &kubernetesClient{
				readOnly: tt.readOnly,
				dryRun:   tt.dryRun,
			}

			err := client.isOperationAllowed(tt.operation)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrOperationNotAllowed)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKubernetesClient_LogOperation(t *testing.T) {
	mockLogger := &MockLogger{}
	client := &kubernetesClient{
		config: &ClientConfig{
			Logger: mockLogger,
		},
	}

	// Expect debug log call
	mockLogger.On("Debug", "kubernetes operation", mock.AnythingOfType("[]interface {}")).Return()

	client.logOperation("get", "default", "pods", "test-pod")

	mockLogger.AssertExpectations(t)
}

func TestKubernetesClient_LogOperationAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := &kubernetesClient{config: &ClientConfig{Logger: logger}}

	client.logOperation(OperationDelete, "apps", "pods", "web-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kubernetes operation", record["msg"])
	assert.Equal(t, OperationDelete, record[logging.KeyOperation])
	assert.Equal(t, "apps", record[logging.KeyNamespace])
	assert.Equal(t, "pods", record[logging.KeyResourceType])
	assert.Equal(t, "web-1", record[logging.KeyResourceName])
}

func TestKubernetesClient_LogOperationWithoutLogger(t *testing.T) {
	client := &kubernetesClient{config: &ClientConfig{}}
	assert.NotPanics(t, func() {
		client.logOperation(OperationList, "default", "pods", "")
	})
}

// Helper function to create minimal kubeconfig for testing
func createMinimalKubeconfig(t testing.TB, path string) {
	t.Helper()
	kubeconfig := `
apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://test.example.com
  name: test-cluster
contexts:
- context:
    cluster: test-cluster
    user: test-user
    namespace: test-namespace
  name: test-context
current-context: test-context
users:
- name: test-user
  user:
    token: test-token
`
	err := os.WriteFile(path, []byte(kubeconfig), 0644)
	require.NoError(t, err)
}

// newTestClient returns a client backed by a fake clientset in the default
// namespace.
func newTestClient(t testing.TB, config *ClientConfig, objects ...runtime.Object) (*kubernetesClient, *fake.Clientset) {
	t.Helper()
	clientset := fake.NewSimpleClientset(objects...)
	if config == nil {
		config = &ClientConfig{}
	}
	return NewClientForClientset(clientset, nil, config), clientset
}
