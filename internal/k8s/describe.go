package k8s

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/duration"
	"sigs.k8s.io/yaml"
)

// DescribePods renders every pod in the client namespace whose name starts
// with namePrefix. Each pod is printed as YAML followed by its events.
func (c *kubernetesClient) DescribePods(ctx context.Context, namePrefix string) (_ string, err error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	c.logOperation(OperationDescribe, c.namespace, "pods", namePrefix)
	ctx, finish := c.startOperation(ctx, OperationDescribe, "pods", c.namespace)
	defer func() { finish(err) }()

	list, err := c.clientset.CoreV1().Pods(c.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to list pods: %w", err)
	}

	var matched []corev1.Pod
	for _, pod := range list.Items {
		if strings.HasPrefix(pod.Name, namePrefix) {
			matched = append(matched, pod)
		}
	}
	if len(matched) == 0 {
		return "", apierrors.NewNotFound(schema.GroupResource{Resource: "pods"}, namePrefix)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	events := make([][]corev1.Event, len(matched))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(describeConcurrency)
	for i := range matched {
		g.Go(func() error {
			podEvents, err := c.podEvents(gctx, matched[i].Name)
			if err != nil {
				return err
			}
			events[i] = podEvents
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var b strings.Builder
	for i := range matched {
		if i > 0 {
			b.WriteString("\n")
		}
		if err := writePodDescription(&b, &matched[i], events[i], time.Now()); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// podEvents returns the events whose involved object is the named pod, oldest
// first.
func (c *kubernetesClient) podEvents(ctx context.Context, podName string) ([]corev1.Event, error) {
	list, err := c.clientset.CoreV1().Events(c.namespace).List(ctx, metav1.ListOptions{
		FieldSelector: fields.OneTermEqualSelector("involvedObject.name", podName).String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events for pod %q: %w", podName, err)
	}

	var events []corev1.Event
	for _, event := range list.Items {
		if event.InvolvedObject.Name == podName {
			events = append(events, event)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return eventTime(events[i]).Before(eventTime(events[j]))
	})
	return events, nil
}

func writePodDescription(b *strings.Builder, pod *corev1.Pod, events []corev1.Event, now time.Time) error {
	obj := pod.DeepCopy()
	obj.ManagedFields = nil
	obj.APIVersion = "v1"
	obj.Kind = "Pod"

	data, err := yaml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to render pod %q: %w", pod.Name, err)
	}
	b.Write(data)

	if len(events) == 0 {
		b.WriteString("Events: <none>\n")
		return nil
	}

	b.WriteString("Events:\n")
	w := tabwriter.NewWriter(b, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "  TYPE\tREASON\tAGE\tFROM\tMESSAGE")
	for _, event := range events {
		age := "<unknown>"
		if t := eventTime(event); !t.IsZero() {
			age = duration.HumanDuration(now.Sub(t))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			event.Type, event.Reason, age, eventSource(event), strings.TrimSpace(event.Message))
	}
	return w.Flush()
}

func eventTime(event corev1.Event) time.Time {
	switch {
	case !event.LastTimestamp.IsZero():
		return event.LastTimestamp.Time
	case !event.EventTime.IsZero():
		return event.EventTime.Time
	default:
		return event.FirstTimestamp.Time
	}
}

func eventSource(event corev1.Event) string {
	if event.Source.Component != "" {
		return event.Source.Component
	}
	return event.ReportingController
}
