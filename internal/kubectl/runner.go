package kubectl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/giantswarm/kube-console/internal/instrumentation"
	"github.com/giantswarm/kube-console/internal/logging"
)

// SpanAttrArgs holds the kubectl argument vector on command spans.
const SpanAttrArgs = "kubectl.args"

// DefaultPath is the kubectl binary looked up on PATH.
const DefaultPath = "kubectl"

var (
	// ErrInvalidName is returned for a resource name kubectl must not see.
	ErrInvalidName = errors.New("invalid resource name")

	// ErrInvalidReplicas is returned for a negative replica count.
	ErrInvalidReplicas = errors.New("invalid replica count")
)

// namePrefixRegex matches any prefix of a DNS-1123 subdomain.
var namePrefixRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*$`)

// RunFunc executes name with args and returns what the process wrote.
type RunFunc func(ctx context.Context, name string, args []string) (stdout, stderr []byte, err error)

// Config configures a Runner.
type Config struct {
	// Path is the kubectl binary. Empty means DefaultPath.
	Path string

	// Kubeconfig and Context are passed through when set.
	Kubeconfig string
	Context    string

	// Namespace every command is scoped to.
	Namespace string

	Logger *slog.Logger
}

// CommandError is returned when kubectl exits non-zero. Its message is
// kubectl's stderr.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("kubectl %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner executes kubectl commands against one namespace.
type Runner struct {
	path       string
	kubeconfig string
	context    string
	namespace  string
	logger     *slog.Logger
	run        RunFunc
}

// NewRunner creates a Runner executing the real kubectl binary.
func NewRunner(cfg Config) *Runner {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		path:       path,
		kubeconfig: cfg.Kubeconfig,
		context:    cfg.Context,
		namespace:  cfg.Namespace,
		logger:     logger,
		run:        execRun,
	}
}

// DescribePods runs `kubectl describe pod <prefix>`. kubectl matches every pod
// whose name starts with prefix.
func (r *Runner) DescribePods(ctx context.Context, prefix string) (string, error) {
	if !namePrefixRegex.MatchString(prefix) || len(prefix) > validation.DNS1123SubdomainMaxLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, prefix)
	}
	return r.execute(ctx, "describe", "pod", prefix)
}

// ScaleDeployment runs `kubectl scale deployments/<name> --replicas=<n>`.
func (r *Runner) ScaleDeployment(ctx context.Context, name string, replicas int32) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if replicas < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidReplicas, replicas)
	}
	return r.execute(ctx, "scale", "deployments/"+name, "--replicas="+strconv.Itoa(int(replicas)))
}

// DeletePod runs `kubectl delete pod <name>`.
func (r *Runner) DeletePod(ctx context.Context, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return r.execute(ctx, "delete", "pod", name)
}

// Args returns the full argument vector for a kubectl command.
func (r *Runner) Args(command ...string) []string {
	args := make([]string, 0, len(command)+6)
	args = append(args, command...)
	if r.namespace != "" {
		args = append(args, "--namespace", r.namespace)
	}
	if r.kubeconfig != "" {
		args = append(args, "--kubeconfig", r.kubeconfig)
	}
	if r.context != "" {
		args = append(args, "--context", r.context)
	}
	return args
}

func (r *Runner) execute(ctx context.Context, command ...string) (string, error) {
	args := r.Args(command...)
	logger := logging.WithOperation(r.logger, command[0])
	logger.Debug("running kubectl", slog.String("path", r.path), slog.Any("args", args))

	ctx, span := instrumentation.StartSpan(ctx, "kubectl."+command[0],
		attribute.String(instrumentation.SpanAttrOperation, command[0]),
		attribute.StringSlice(SpanAttrArgs, args))
	defer span.End()

	stdout, stderr, err := r.run(ctx, r.path, args)
	if err != nil {
		cmdErr := &CommandError{Args: args, Stderr: string(stderr), Err: err}
		logger.Debug("kubectl failed", logging.SanitizedErr(err))
		instrumentation.SetSpanError(span, cmdErr)
		return "", cmdErr
	}
	instrumentation.SetSpanSuccess(span)
	return string(stdout), nil
}

func validateName(name string) error {
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return fmt.Errorf("%w: %q: %s", ErrInvalidName, name, strings.Join(errs, "; "))
	}
	return nil
}

func execRun(ctx context.Context, name string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
