// Package instrumentation provides OpenTelemetry instrumentation for
// kube-console.
//
// Instrumentation is disabled by default. When enabled it provides:
//   - OpenTelemetry metrics for Kubernetes operations and console actions
//   - Tracing spans around every Kubernetes API call
//   - Prometheus metrics export via a /metrics endpoint
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Kubernetes Operation Metrics:
//   - kubernetes_operations_total: Counter of K8s operations by operation and status
//   - kubernetes_operation_duration_seconds: Histogram of K8s operation durations
//
// Pod Operation Metrics:
//   - kubernetes_pod_operations_total: Counter of pod operations
//   - kubernetes_pod_operation_duration_seconds: Histogram of pod operation durations
//
// Console Metrics:
//   - console_actions_total: Counter of menu actions by action and status
//
// Namespace and resource type labels are only added when DetailedLabels is
// set, since they multiply the number of series in large clusters.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: Use plain HTTP for OTLP export
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: kube-console)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordK8sOperation(ctx, "list", "pods", "default", "success", time.Since(start))
package instrumentation
