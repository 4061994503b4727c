package k8s

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/remotecommand"
)

// PodManager implementation

// ListPods lists pods in the client namespace, or in every namespace when
// allNamespaces is set.
func (c *kubernetesClient) ListPods(ctx context.Context, allNamespaces bool) (_ []PodSummary, err error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	namespace := c.namespace
	if allNamespaces {
		namespace = metav1.NamespaceAll
	}

	c.logOperation(OperationList, namespace, "pods", "")
	ctx, finish := c.startOperation(ctx, OperationList, "pods", namespace)
	defer func() { finish(err) }()

	list, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	pods := make([]PodSummary, 0, len(list.Items))
	for i := range list.Items {
		pods = append(pods, podSummary(&list.Items[i]))
	}
	return pods, nil
}

// DeletePod deletes a pod in the client namespace.
func (c *kubernetesClient) DeletePod(ctx context.Context, name string) (_ string, err error) {
	if err := c.isOperationAllowed(OperationDelete); err != nil {
		return "", err
	}
	if err := c.ready(); err != nil {
		return "", err
	}

	c.logOperation(OperationDelete, c.namespace, "pods", name)
	ctx, finish := c.startOperation(ctx, OperationDelete, "pods", c.namespace)
	defer func() { finish(err) }()

	err = c.clientset.CoreV1().Pods(c.namespace).Delete(ctx, name, metav1.DeleteOptions{
		DryRun: c.dryRunOption(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to delete pod %q: %w", name, err)
	}

	return withDryRunSuffix(fmt.Sprintf("pod %q deleted", name), c.dryRun), nil
}

// Exec starts a shell in the pod and writes each command to its stdin, one
// line at a time. It waits opts.PollInterval before sending each command,
// closes stdin once every command has been sent and returns when the remote
// shell exits.
func (c *kubernetesClient) Exec(ctx context.Context, podName string, commands []string, opts ExecOptions) (err error) {
	if err := c.isOperationAllowed(OperationExec); err != nil {
		return err
	}
	if err := c.ready(); err != nil {
		return err
	}

	c.logOperation(OperationExec, c.namespace, "pods", podName)
	ctx, finish := c.startOperation(ctx, OperationExec, "pods", c.namespace)
	defer func() { finish(err) }()

	if len(commands) == 0 {
		commands = []string{DefaultExecCommand}
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = opts.Stdout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultExecPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultExecTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	executor, err := c.newExecutor(c.namespace, podName, opts.Container, DefaultExecShell)
	if err != nil {
		return fmt.Errorf("failed to create executor: %w", err)
	}

	var mu sync.Mutex
	stdout := newPrefixWriter(opts.Stdout, StdoutPrefix, &mu)
	stderr := newPrefixWriter(opts.Stderr, StderrPrefix, &mu)
	defer func() {
		_ = stdout.Flush()
		_ = stderr.Flush()
	}()

	stdinReader, stdinWriter := io.Pipe()
	done := make(chan error, 1)
	go func() {
		streamErr := executor.StreamWithContext(ctx, remotecommand.StreamOptions{
			Stdin:  stdinReader,
			Stdout: stdout,
			Stderr: stderr,
		})
		// Unblock a pending stdin write if the stream ended first.
		_ = stdinReader.CloseWithError(io.ErrClosedPipe)
		done <- streamErr
	}()

	timer := time.NewTimer(opts.PollInterval)
	defer timer.Stop()

	for _, command := range commands {
		select {
		case streamErr := <-done:
			_ = stdinWriter.Close()
			return execError(c.namespace, podName, streamErr)
		case <-ctx.Done():
			_ = stdinWriter.Close()
			return fmt.Errorf("exec in pod %s/%s: %w", c.namespace, podName, ctx.Err())
		case <-timer.C:
		}

		mu.Lock()
		_, _ = fmt.Fprintf(opts.Stdout, "Running command... %s\n", command)
		mu.Unlock()

		if _, err := io.WriteString(stdinWriter, command+"\n"); err != nil {
			break
		}
		timer.Reset(opts.PollInterval)
	}

	_ = stdinWriter.Close()

	select {
	case streamErr := <-done:
		return execError(c.namespace, podName, streamErr)
	case <-ctx.Done():
		return fmt.Errorf("exec in pod %s/%s: %w", c.namespace, podName, ctx.Err())
	}
}

func execError(namespace, podName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to execute command in pod %s/%s: %w", namespace, podName, err)
}

// spdyExecutor is the default ExecutorFactory.
func (c *kubernetesClient) spdyExecutor(namespace, podName, container string, command []string) (remotecommand.Executor, error) {
	if c.restConfig == nil {
		return nil, ErrNotConnected
	}

	execReq := c.clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Name(podName).
		Namespace(namespace).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: container,
			Command:   command,
			Stdin:     true,
			Stdout:    true,
			Stderr:    true,
			TTY:       false,
		}, scheme.ParameterCodec)

	return remotecommand.NewSPDYExecutor(c.restConfig, http.MethodPost, execReq.URL())
}

// podSummary copies the table fields out of a pod without assuming any
// optional field is set.
func podSummary(pod *corev1.Pod) PodSummary {
	summary := PodSummary{
		Namespace:     pod.Namespace,
		Name:          pod.Name,
		Phase:         string(pod.Status.Phase),
		PodIP:         pod.Status.PodIP,
		NodeName:      pod.Spec.NodeName,
		NominatedNode: pod.Status.NominatedNodeName,
	}

	if len(pod.Status.ContainerStatuses) > 0 {
		restarts := pod.Status.ContainerStatuses[0].RestartCount
		summary.Restarts = &restarts
	}

	for _, gate := range pod.Spec.ReadinessGates {
		summary.ReadinessGates = append(summary.ReadinessGates, string(gate.ConditionType))
	}

	return summary
}

func withDryRunSuffix(msg string, dryRun bool) string {
	if dryRun {
		return msg + " (server dry run)"
	}
	return msg
}
