// Package k8s provides the cluster client used by the console.
//
// The package wraps client-go behind a small set of focused interfaces:
//
//   - PodManager: list, describe, delete and exec into pods
//   - WorkloadManager: list, create and scale deployments, create daemonsets
//
// Every operation works against a single namespace chosen when the client is
// created (or against all namespaces when listing pods with allNamespaces set).
// Results are returned as plain summaries; rendering them is left to the
// caller.
//
// A client whose kubeconfig could not be loaded is still returned by
// NewClient. Each of its operations fails with an error wrapping
// ErrNotConnected, which Classify reports as ErrorKindConnectivity.
//
// Example usage:
//
//	client, err := k8s.NewClient(&k8s.ClientConfig{Namespace: "default"})
//	if err != nil {
//		return err
//	}
//
//	pods, err := client.ListPods(ctx, false)
//	if err != nil {
//		return err
//	}
//
//	// Run a command in a pod, streaming prefixed output to stdout
//	err = client.Exec(ctx, "nginx-6d4cf56db6-x2kqz", []string{"ls"},
//		k8s.ExecOptions{Stdout: os.Stdout})
package k8s
