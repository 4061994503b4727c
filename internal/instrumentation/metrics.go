package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrStatus       = "status"
	attrOperation    = "operation"
	attrResourceType = "resource_type"
	attrNamespace    = "namespace"
	attrAction       = "action"
)

// Metrics provides methods for recording observability metrics. All methods
// are safe to call on a nil *Metrics, which records nothing.
type Metrics struct {
	// Kubernetes operation metrics
	k8sOperationsTotal      metric.Int64Counter
	k8sOperationDuration    metric.Float64Histogram
	k8sPodOperationsTotal   metric.Int64Counter
	k8sPodOperationDuration metric.Float64Histogram

	// Console metrics
	consoleActionsTotal metric.Int64Counter

	// detailedLabels controls whether high-cardinality labels (namespace, resource_type)
	// are included in Kubernetes operation metrics
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// Kubernetes Operation Metrics
	m.k8sOperationsTotal, err = meter.Int64Counter(
		"kubernetes_operations_total",
		metric.WithDescription("Total number of Kubernetes operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes_operations_total counter: %w", err)
	}

	m.k8sOperationDuration, err = meter.Float64Histogram(
		"kubernetes_operation_duration_seconds",
		metric.WithDescription("Kubernetes operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes_operation_duration_seconds histogram: %w", err)
	}

	// Pod Operation Metrics
	m.k8sPodOperationsTotal, err = meter.Int64Counter(
		"kubernetes_pod_operations_total",
		metric.WithDescription("Total number of Kubernetes pod operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes_pod_operations_total counter: %w", err)
	}

	m.k8sPodOperationDuration, err = meter.Float64Histogram(
		"kubernetes_pod_operation_duration_seconds",
		metric.WithDescription("Kubernetes pod operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes_pod_operation_duration_seconds histogram: %w", err)
	}

	// Console Metrics
	m.consoleActionsTotal, err = meter.Int64Counter(
		"console_actions_total",
		metric.WithDescription("Total number of console menu actions"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create console_actions_total counter: %w", err)
	}

	return m, nil
}

// RecordK8sOperation records a Kubernetes operation with operation type, resource type,
// namespace, status, and duration.
//
// When detailedLabels is false (default), only operation and status labels
// are recorded. When detailedLabels is true, namespace and resource_type are
// also included.
func (m *Metrics) RecordK8sOperation(ctx context.Context, operation, resourceType, namespace, status string, duration time.Duration) {
	if m == nil || m.k8sOperationsTotal == nil || m.k8sOperationDuration == nil {
		return // Instrumentation not initialized
	}

	// Always include operation and status (low cardinality)
	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels {
		attrs = append(attrs,
			attribute.String(attrResourceType, resourceType),
			attribute.String(attrNamespace, namespace),
		)
	}

	m.k8sOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.k8sOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordPodOperation records a Kubernetes pod operation with operation type, namespace,
// status, and duration.
func (m *Metrics) RecordPodOperation(ctx context.Context, operation, namespace, status string, duration time.Duration) {
	if m == nil || m.k8sPodOperationsTotal == nil || m.k8sPodOperationDuration == nil {
		return // Instrumentation not initialized
	}

	// Always include operation and status (low cardinality)
	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels {
		attrs = append(attrs, attribute.String(attrNamespace, namespace))
	}

	m.k8sPodOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.k8sPodOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordConsoleAction records a completed console menu action.
func (m *Metrics) RecordConsoleAction(ctx context.Context, action, status string) {
	if m == nil || m.consoleActionsTotal == nil {
		return // Instrumentation not initialized
	}

	m.consoleActionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrAction, action),
		attribute.String(attrStatus, status),
	))
}
