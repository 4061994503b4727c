package console

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/giantswarm/kube-console/internal/k8s"
	"github.com/giantswarm/kube-console/internal/output"
	"github.com/giantswarm/kube-console/internal/templates"
)

func (c *Console) listPods(ctx context.Context) error {
	c.display.Rule()
	_, err := c.showPods(ctx)
	return err
}

func (c *Console) describePod(ctx context.Context) error {
	return c.podLoop(ctx, strings.HasPrefix, func(ctx context.Context, name string) error {
		description, err := c.operator.DescribePods(ctx, name)
		if err != nil {
			return c.fail(err)
		}
		c.display.Block(description)
		return nil
	})
}

func (c *Console) execCommand(ctx context.Context) error {
	return c.podLoop(ctx, equal, func(ctx context.Context, name string) error {
		command, err := c.input(promptCommand)
		if err != nil {
			return err
		}
		if command == "" {
			command = k8s.DefaultExecCommand
			c.display.Infof(msgDefaultCommand, command)
		} else {
			c.display.Infof(msgInputCommand, command)
		}

		err = c.cluster.Exec(ctx, name, []string{command}, k8s.ExecOptions{
			Stdout:       c.opts.Out,
			Stderr:       c.opts.Out,
			PollInterval: c.opts.ExecPollInterval,
			Timeout:      c.opts.ExecTimeout,
		})
		return c.fail(err)
	})
}

func (c *Console) deletePod(ctx context.Context) error {
	return c.podLoop(ctx, equal, func(ctx context.Context, name string) error {
		result, err := c.operator.DeletePod(ctx, name)
		if err != nil {
			return c.fail(err)
		}
		c.display.Info(result)
		return nil
	})
}

func (c *Console) scalePods(ctx context.Context) error {
	for {
		c.display.Rule()

		names, err := c.showDeployments(ctx)
		if err != nil || len(names) == 0 {
			return err
		}

		name, err := c.input(fmt.Sprintf(promptNameFromList, resourceDeployment))
		if err != nil || name == "" {
			return err
		}
		if !slices.Contains(names, name) {
			c.display.Errorf(msgInvalidDeploymentName, name)
			continue
		}

		quantity, err := c.input(promptScaleQuantity)
		if err != nil {
			return err
		}
		if quantity == "" {
			continue
		}
		replicas, err := strconv.ParseInt(quantity, 10, 32)
		if err != nil || replicas < 0 {
			c.display.Errorf(msgInvalidQuantity, quantity)
			continue
		}

		result, err := c.operator.ScaleDeployment(ctx, name, int32(replicas))
		if err != nil {
			if err := c.fail(err); err != nil {
				return err
			}
			continue
		}
		c.display.Info(result)
	}
}

func (c *Console) createPod(ctx context.Context) error {
	for {
		c.display.Rule()

		choice, err := c.input(promptImage)
		if err != nil || choice == "" {
			return err
		}
		image, ok := imageFor(choice)
		if !ok {
			c.display.Warn(fmt.Sprintf(msgWrongInput, choice))
			continue
		}

		name, err := c.input(fmt.Sprintf(promptName, resourcePod))
		if err != nil {
			return err
		}

		deployment, err := c.templates.Deployment(image, name)
		if err != nil {
			c.report(err)
			continue
		}
		created, err := c.cluster.CreateDeployment(ctx, deployment)
		if err != nil {
			if err := c.fail(err); err != nil {
				return err
			}
			continue
		}
		c.display.Infof(msgPodCreated, created.Name)
	}
}

func (c *Console) deployToEveryNode(ctx context.Context) error {
	for {
		c.display.Rule()

		name, err := c.input(fmt.Sprintf(promptName, resourcePod))
		if err != nil || name == "" {
			return err
		}

		daemonSet, err := c.templates.DaemonSet(name)
		if err != nil {
			c.report(err)
			continue
		}
		created, err := c.cluster.CreateDaemonSet(ctx, daemonSet)
		if err != nil {
			if err := c.fail(err); err != nil {
				return err
			}
			continue
		}
		c.display.Infof(msgPodDeployed, created.Name)
	}
}

func (c *Console) createMultiplePods(_ context.Context) error {
	c.display.Rule()
	return fmt.Errorf("create multiple pods demo: %w", ErrNotSupported)
}

// podLoop runs the list, prompt, validate and act cycle shared by the pod
// actions until the operator submits an empty name or no pods are left.
func (c *Console) podLoop(ctx context.Context, matches func(name, input string) bool, act func(context.Context, string) error) error {
	for {
		c.display.Rule()

		pods, err := c.showPods(ctx)
		if err != nil || len(pods) == 0 {
			return err
		}
		names := c.localPodNames(pods)
		if len(names) == 0 {
			c.display.Warn(msgNoPods)
			return nil
		}

		name, err := c.input(fmt.Sprintf(promptNameFromList, resourcePod))
		if err != nil || name == "" {
			return err
		}
		if !slices.ContainsFunc(names, func(n string) bool { return matches(n, name) }) {
			c.display.Errorf(msgInvalidPodName, name)
			continue
		}

		if err := act(ctx, name); err != nil {
			return err
		}
	}
}

// localPodNames returns the names of the pods in the client namespace. Pod
// actions run against that namespace only, so pods listed from others are
// not valid targets.
func (c *Console) localPodNames(pods []k8s.PodSummary) []string {
	namespace := c.cluster.Namespace()
	names := make([]string, 0, len(pods))
	for _, pod := range pods {
		if pod.Namespace == "" || pod.Namespace == namespace {
			names = append(names, pod.Name)
		}
	}
	return names
}

// showPods renders the pod table and returns the listed pods. Failures are
// reported here; only interruptions are returned.
func (c *Console) showPods(ctx context.Context) ([]k8s.PodSummary, error) {
	var (
		pods    []k8s.PodSummary
		listErr error
	)
	if err := c.prompter.Spin(spinFetchingPods, func() {
		pods, listErr = c.cluster.ListPods(ctx, c.opts.AllNamespaces)
	}); err != nil {
		return nil, err
	}
	if listErr != nil {
		return nil, c.fail(listErr)
	}
	if len(pods) == 0 {
		c.display.Warn(msgNoPods)
		return nil, nil
	}

	rows := make([]output.Pod, 0, len(pods))
	for _, pod := range pods {
		rows = append(rows, output.Pod(pod))
	}
	c.display.Table(output.PodTable(rows))
	return pods, nil
}

// showDeployments renders the deployment table and returns the deployment
// names.
func (c *Console) showDeployments(ctx context.Context) ([]string, error) {
	var (
		deployments []k8s.DeploymentSummary
		listErr     error
	)
	if err := c.prompter.Spin(spinFetchingDeployments, func() {
		deployments, listErr = c.cluster.ListDeployments(ctx)
	}); err != nil {
		return nil, err
	}
	if listErr != nil {
		return nil, c.fail(listErr)
	}
	if len(deployments) == 0 {
		c.display.Warn(msgNoDeployments)
		return nil, nil
	}

	rows := make([]output.Deployment, 0, len(deployments))
	names := make([]string, 0, len(deployments))
	for _, deployment := range deployments {
		rows = append(rows, output.Deployment(deployment))
		names = append(names, deployment.Name)
	}
	c.display.Table(output.DeploymentTable(rows))
	return names, nil
}

// fail reports err and swallows it unless it is an interruption.
func (c *Console) fail(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupt(err) {
		return err
	}
	c.report(err)
	return nil
}

func (c *Console) input(prompt string) (string, error) {
	value, err := c.prompter.Input(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func imageFor(choice string) (templates.Image, bool) {
	switch choice {
	case "N", "n", "NGINX", "nginx":
		return templates.ImageNginx, true
	case "R", "r", "REDIS", "redis":
		return templates.ImageRedis, true
	default:
		return "", false
	}
}

func equal(name, input string) bool {
	return name == input
}
