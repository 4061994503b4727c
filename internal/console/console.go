package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	appsv1 "k8s.io/api/apps/v1"

	"github.com/giantswarm/kube-console/internal/instrumentation"
	"github.com/giantswarm/kube-console/internal/k8s"
	"github.com/giantswarm/kube-console/internal/logging"
	"github.com/giantswarm/kube-console/internal/templates"
)

// ErrNotSupported is returned by menu entries that have no implementation.
var ErrNotSupported = errors.New("not supported")

// Cluster is the typed cluster API the console drives.
type Cluster interface {
	Namespace() string
	ListPods(ctx context.Context, allNamespaces bool) ([]k8s.PodSummary, error)
	ListDeployments(ctx context.Context) ([]k8s.DeploymentSummary, error)
	CreateDeployment(ctx context.Context, deployment *appsv1.Deployment) (*appsv1.Deployment, error)
	CreateDaemonSet(ctx context.Context, daemonSet *appsv1.DaemonSet) (*appsv1.DaemonSet, error)
	Exec(ctx context.Context, podName string, commands []string, opts k8s.ExecOptions) error
}

// Operator serves describe, scale and delete. Both the k8s client and the
// kubectl runner implement it.
type Operator interface {
	DescribePods(ctx context.Context, namePrefix string) (string, error)
	ScaleDeployment(ctx context.Context, name string, replicas int32) (string, error)
	DeletePod(ctx context.Context, name string) (string, error)
}

// Templates supplies the workload objects created from the menu.
type Templates interface {
	Deployment(image templates.Image, name string) (*appsv1.Deployment, error)
	DaemonSet(name string) (*appsv1.DaemonSet, error)
}

// Options configures a Console.
type Options struct {
	// AllNamespaces lists pods across every namespace.
	AllNamespaces bool

	// ExecPollInterval and ExecTimeout are passed to every exec session.
	ExecPollInterval time.Duration
	ExecTimeout      time.Duration

	// Out receives all console output. Defaults to os.Stdout.
	Out io.Writer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional.
	Metrics *instrumentation.Metrics
}

// Console is the interactive menu.
type Console struct {
	opts      Options
	cluster   Cluster
	operator  Operator
	templates Templates
	prompter  Prompter
	display   *display
	logger    *slog.Logger
	root      *Menu

	// action names the running action; failed is set when it reported an
	// error.
	action string
	failed bool
}

// New builds the console and its menu tree.
func New(opts Options, cluster Cluster, operator Operator, tmpl Templates, prompter Prompter) *Console {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ExecPollInterval <= 0 {
		opts.ExecPollInterval = k8s.DefaultExecPollInterval
	}
	if opts.ExecTimeout <= 0 {
		opts.ExecTimeout = k8s.DefaultExecTimeout
	}

	c := &Console{
		opts:      opts,
		cluster:   cluster,
		operator:  operator,
		templates: tmpl,
		prompter:  prompter,
		display:   newDisplay(opts.Out),
		logger:    opts.Logger,
	}
	c.root = c.buildMenu()
	return c
}

// Run opens the main menu and returns when the operator chooses Exit. An
// interrupted prompt or a cancelled ctx ends the session with an error.
func (c *Console) Run(ctx context.Context) error {
	return c.open(ctx, c.root)
}

// runAction frames an action with rule lines, records it and reports any
// error it returns. Only interruptions are passed back to the menu.
func (c *Console) runAction(ctx context.Context, name string, action func(context.Context) error) error {
	ctx, span := instrumentation.StartActionSpan(ctx, name)
	defer span.End()

	logger := logging.WithAction(c.logger, name)
	logger.Debug("action started")

	start := time.Now()
	c.action = name
	c.failed = false
	err := action(ctx)
	if isInterrupt(err) {
		return err
	}
	if err != nil {
		instrumentation.SetSpanError(span, err)
		c.report(err)
	}
	c.display.Rule()

	status := instrumentation.StatusSuccess
	if c.failed {
		status = instrumentation.StatusError
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	c.opts.Metrics.RecordConsoleAction(ctx, name, status)
	attrs := []any{logging.Status(status), logging.Duration(time.Since(start))}
	if traceID := instrumentation.GetTraceID(ctx); traceID != "" {
		attrs = append(attrs, logging.TraceID(traceID))
	}
	logger.Debug("action finished", attrs...)
	return nil
}

// report prints err the way the operator expects to see it.
func (c *Console) report(err error) {
	c.failed = true
	c.logger.Debug("operation failed", logging.Action(c.action), logging.SanitizedErr(err))

	switch {
	case errors.Is(err, ErrNotSupported):
		c.display.Info(msgNotImplemented)
	case k8s.Classify(err) == k8s.ErrorKindConnectivity:
		c.display.Error(msgUnableToConnect)
	case k8s.Classify(err) == k8s.ErrorKindAPI:
		c.display.Error(k8s.APIMessage(err))
	default:
		c.display.Error(err.Error())
	}
}

func (c *Console) podsScope() string {
	if c.opts.AllNamespaces {
		return allNamespacesScope
	}
	return c.cluster.Namespace()
}

func isInterrupt(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled)
}

func (c *Console) listPodsLabel() string {
	return fmt.Sprintf(labelListPods, c.podsScope())
}
