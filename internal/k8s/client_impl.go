package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/remotecommand"
	"k8s.io/client-go/util/homedir"

	"github.com/giantswarm/kube-console/internal/instrumentation"
	"github.com/giantswarm/kube-console/internal/logging"
)

// kubernetesClient implements the Client interface using client-go.
type kubernetesClient struct {
	// Configuration
	config *ClientConfig

	clientset  kubernetes.Interface
	restConfig *rest.Config
	namespace  string

	// connErr is set when the kubeconfig could not be loaded. Every
	// operation returns it.
	connErr error

	// Safety settings
	readOnly bool
	dryRun   bool

	// Performance settings
	qpsLimit   float32
	burstLimit int
	timeout    time.Duration

	newExecutor ExecutorFactory
	metrics     *instrumentation.Metrics
}

// ClientConfig holds configuration for the Kubernetes client.
type ClientConfig struct {
	// Kubeconfig settings
	KubeconfigPath string
	Context        string
	Namespace      string

	// Safety settings
	ReadOnly bool
	DryRun   bool

	// Performance settings
	QPSLimit   float32
	BurstLimit int
	Timeout    time.Duration

	// Debug settings
	DebugMode bool

	// Logging
	Logger Logger

	// Metrics is optional; a nil value disables recording.
	Metrics *instrumentation.Metrics

	// ExecutorFactory overrides how exec streams are opened.
	ExecutorFactory ExecutorFactory
}

// Logger interface for client logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ExecutorFactory opens a remote command executor for a pod.
type ExecutorFactory func(namespace, podName, container string, command []string) (remotecommand.Executor, error)

// NewClient creates a new Kubernetes client with the given configuration.
//
// A kubeconfig that cannot be loaded is not fatal: a warning is logged and the
// returned client fails every operation with ErrNotConnected.
func NewClient(config *ClientConfig) (*kubernetesClient, error) {
	if config == nil {
		return nil, fmt.Errorf("client configuration is required")
	}

	applyDefaults(config)

	restConfig, namespace, err := loadKubeconfig(config)
	if err != nil {
		if config.Logger != nil {
			config.Logger.Warn("unable to load kube-config", "error", err)
		}
		client := newClient(config, nil, nil, namespace)
		client.connErr = fmt.Errorf("%w: %v", ErrNotConnected, err)
		return client, nil
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		if config.Logger != nil {
			config.Logger.Warn("unable to load kube-config", "error", err)
		}
		client := newClient(config, nil, nil, namespace)
		client.connErr = fmt.Errorf("%w: %v", ErrNotConnected, err)
		return client, nil
	}

	if config.Logger != nil {
		config.Logger.Debug("Using kubeconfig authentication", "context", config.Context, "namespace", namespace)
	}

	return newClient(config, clientset, restConfig, namespace), nil
}

// NewClientForClientset creates a client around an existing clientset. The
// rest config is only needed by the default exec executor.
func NewClientForClientset(clientset kubernetes.Interface, restConfig *rest.Config, config *ClientConfig) *kubernetesClient {
	if config == nil {
		config = &ClientConfig{}
	}
	applyDefaults(config)

	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return newClient(config, clientset, restConfig, namespace)
}

func applyDefaults(config *ClientConfig) {
	if config.QPSLimit == 0 {
		config.QPSLimit = DefaultQPSLimit
	}
	if config.BurstLimit == 0 {
		config.BurstLimit = DefaultBurstLimit
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout * time.Second
	}
}

func newClient(config *ClientConfig, clientset kubernetes.Interface, restConfig *rest.Config, namespace string) *kubernetesClient {
	c := &kubernetesClient{
		config:     config,
		clientset:  clientset,
		restConfig: restConfig,
		namespace:  namespace,
		readOnly:   config.ReadOnly,
		dryRun:     config.DryRun,
		qpsLimit:   config.QPSLimit,
		burstLimit: config.BurstLimit,
		timeout:    config.Timeout,
		metrics:    config.Metrics,
	}

	c.newExecutor = config.ExecutorFactory
	if c.newExecutor == nil {
		c.newExecutor = c.spdyExecutor
	}

	return c
}

// loadKubeconfig builds the rest config and resolves the namespace. The
// namespace is always resolved, falling back to DefaultNamespace, even when
// loading fails.
func loadKubeconfig(config *ClientConfig) (*rest.Config, string, error) {
	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	{
		kconf := os.Getenv("KUBECONFIG")
		if strings.HasPrefix(kconf, "~/") {
			kconf = filepath.Join(homedir.HomeDir(), kconf[2:])
		}

		if kconf != "" && config.KubeconfigPath == "" {
			config.KubeconfigPath = kconf
		}
	}

	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if config.KubeconfigPath != "" {
		loadingRules.ExplicitPath = config.KubeconfigPath
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		&clientcmd.ConfigOverrides{
			CurrentContext: config.Context,
		},
	)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, namespace, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	if config.Namespace == "" {
		if ns, _, err := clientConfig.Namespace(); err == nil && ns != "" {
			namespace = ns
		}
	}

	if config.DebugMode && config.Logger != nil {
		config.Logger.Debug("loadKubeconfig: got REST config", "host", restConfig.Host, "namespace", namespace)
	}

	// Apply performance settings
	restConfig.QPS = config.QPSLimit
	restConfig.Burst = config.BurstLimit
	restConfig.Timeout = config.Timeout

	return restConfig, namespace, nil
}

// Namespace returns the namespace operations are scoped to.
func (c *kubernetesClient) Namespace() string {
	return c.namespace
}

// ready reports whether the client is connected to a cluster.
func (c *kubernetesClient) ready() error {
	if c.connErr != nil {
		return c.connErr
	}
	if c.clientset == nil {
		return ErrNotConnected
	}
	return nil
}

// isOperationAllowed checks if an operation is allowed based on configuration.
// Mutating operations are rejected in read-only mode unless dry-run is set;
// exec has no dry-run form and is always rejected in read-only mode.
func (c *kubernetesClient) isOperationAllowed(operation string) error {
	if !c.readOnly {
		return nil
	}

	switch operation {
	case OperationCreate, OperationDeploy, OperationScale, OperationDelete:
		if c.dryRun {
			return nil
		}
	case OperationExec:
	default:
		return nil
	}

	return fmt.Errorf("%w: %s operations are not allowed in read-only mode",
		ErrOperationNotAllowed, cases.Title(language.English).String(operation))
}

// dryRunOption returns the DryRun value for mutating requests.
func (c *kubernetesClient) dryRunOption() []string {
	if c.dryRun {
		return []string{metav1.DryRunAll}
	}
	return nil
}

// logOperation logs an operation for debugging and audit purposes.
func (c *kubernetesClient) logOperation(operation, namespace, resource, name string) {
	c.debug("kubernetes operation",
		logging.Operation(operation),
		logging.Namespace(namespace),
		logging.ResourceType(resource),
		logging.ResourceName(name),
	)
}

// debug logs through the configured logger, if any.
func (c *kubernetesClient) debug(msg string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, args...)
	}
}

// startOperation opens a span for the operation and returns a function that
// closes it and records metrics.
func (c *kubernetesClient) startOperation(ctx context.Context, operation, resourceType, namespace string) (context.Context, func(error)) {
	ctx, span := instrumentation.StartK8sSpan(ctx, operation, resourceType, namespace)
	start := time.Now()

	return ctx, func(err error) {
		finishSpan(span, err)

		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		if resourceType == "pods" {
			c.metrics.RecordPodOperation(ctx, operation, namespace, status, time.Since(start))
		}
		c.metrics.RecordK8sOperation(ctx, operation, resourceType, namespace, status, time.Since(start))
	}
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	span.End()
}
