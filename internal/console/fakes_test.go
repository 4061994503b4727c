package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"

	appsv1 "k8s.io/api/apps/v1"

	"github.com/giantswarm/kube-console/internal/k8s"
	"github.com/giantswarm/kube-console/internal/templates"
)

// scriptedPrompter answers prompts from fixed scripts. An exhausted script
// behaves like an operator pressing Ctrl-C.
type scriptedPrompter struct {
	t          *testing.T
	selections []string
	inputs     []string

	menus   []string
	prompts []string
	spins   []string
}

func (p *scriptedPrompter) Select(title, _ string, options []string) (int, error) {
	p.menus = append(p.menus, title)
	if len(p.selections) == 0 {
		return 0, ErrInterrupted
	}
	label := p.selections[0]
	p.selections = p.selections[1:]

	index := slices.Index(options, label)
	if index < 0 {
		p.t.Fatalf("option %q not offered in %s: %v", label, title, options)
	}
	return index, nil
}

func (p *scriptedPrompter) Input(title string) (string, error) {
	p.prompts = append(p.prompts, title)
	if len(p.inputs) == 0 {
		return "", ErrInterrupted
	}
	value := p.inputs[0]
	p.inputs = p.inputs[1:]
	return value, nil
}

func (p *scriptedPrompter) Spin(title string, action func()) error {
	p.spins = append(p.spins, title)
	action()
	return nil
}

type execCall struct {
	pod      string
	commands []string
	opts     k8s.ExecOptions
}

// fakeCluster implements Cluster and Operator in memory.
type fakeCluster struct {
	namespace string

	pods           []k8s.PodSummary
	podsErr        error
	deployments    []k8s.DeploymentSummary
	deploymentsErr error
	mutateErr      error

	listPodsCalls int
	allNamespaces []bool
	created       []*appsv1.Deployment
	daemonSets    []*appsv1.DaemonSet
	execs         []execCall
	described     []string
	scaled        map[string]int32
	scaleOrder    []string
	deleted       []string
}

func (f *fakeCluster) Namespace() string {
	if f.namespace == "" {
		return "default"
	}
	return f.namespace
}

func (f *fakeCluster) ListPods(_ context.Context, allNamespaces bool) ([]k8s.PodSummary, error) {
	f.listPodsCalls++
	f.allNamespaces = append(f.allNamespaces, allNamespaces)
	return f.pods, f.podsErr
}

func (f *fakeCluster) ListDeployments(context.Context) ([]k8s.DeploymentSummary, error) {
	return f.deployments, f.deploymentsErr
}

func (f *fakeCluster) CreateDeployment(_ context.Context, d *appsv1.Deployment) (*appsv1.Deployment, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.created = append(f.created, d)
	return d.DeepCopy(), nil
}

func (f *fakeCluster) CreateDaemonSet(_ context.Context, ds *appsv1.DaemonSet) (*appsv1.DaemonSet, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.daemonSets = append(f.daemonSets, ds)
	return ds.DeepCopy(), nil
}

func (f *fakeCluster) Exec(_ context.Context, pod string, commands []string, opts k8s.ExecOptions) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.execs = append(f.execs, execCall{pod: pod, commands: commands, opts: opts})
	for _, cmd := range commands {
		_, _ = fmt.Fprintf(opts.Stdout, "Running command... %s\n", cmd)
		_, _ = fmt.Fprintf(opts.Stdout, "%sran %s\n", k8s.StdoutPrefix, cmd)
	}
	return nil
}

func (f *fakeCluster) DescribePods(_ context.Context, prefix string) (string, error) {
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	f.described = append(f.described, prefix)
	return "Name: " + prefix + "\nEvents: <none>\n", nil
}

func (f *fakeCluster) ScaleDeployment(_ context.Context, name string, replicas int32) (string, error) {
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	if f.scaled == nil {
		f.scaled = map[string]int32{}
	}
	f.scaled[name] = replicas
	f.scaleOrder = append(f.scaleOrder, name)
	return "deployment.apps/" + name + " scaled", nil
}

func (f *fakeCluster) DeletePod(_ context.Context, name string) (string, error) {
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	f.deleted = append(f.deleted, name)
	return fmt.Sprintf("pod %q deleted", name), nil
}

func newTestConsole(t *testing.T, opts Options, cluster *fakeCluster, prompter *scriptedPrompter) (*Console, *bytes.Buffer) {
	t.Helper()
	prompter.t = t

	var out bytes.Buffer
	opts.Out = &out
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return New(opts, cluster, cluster, templates.NewStore(templates.Paths{}), prompter), &out
}

func testPods(names ...string) []k8s.PodSummary {
	pods := make([]k8s.PodSummary, 0, len(names))
	for _, name := range names {
		pods = append(pods, k8s.PodSummary{
			Namespace: "default",
			Name:      name,
			Phase:     "Running",
			PodIP:     "10.0.0.1",
			NodeName:  "node-1",
		})
	}
	return pods
}

// basicMenu returns the selections that open the basic operations menu, run
// label and leave the console.
func basicMenu(label string) []string {
	return []string{labelBasicOperations, label, labelGoBack, labelExit}
}
