package cmd

import (
	"github.com/spf13/pflag"

	"github.com/giantswarm/kube-console/internal/config"
)

// bindConsoleFlags registers the console flags with their defaults taken from
// values.
func bindConsoleFlags(flags *pflag.FlagSet, values *config.Config) {
	// Cluster access
	flags.StringVar(&values.Kubeconfig, "kubeconfig", values.Kubeconfig, "Path to the kubeconfig file (default $KUBECONFIG or ~/.kube/config)")
	flags.StringVar(&values.Context, "context", values.Context, "Kubeconfig context to use")
	flags.StringVarP(&values.Namespace, "namespace", "n", values.Namespace, "Namespace to work in (default from the kubeconfig context, then \"default\")")
	flags.BoolVarP(&values.AllNamespaces, "all-namespaces", "A", values.AllNamespaces, "List pods across all namespaces")

	// Backend
	flags.StringVar(&values.Backend, "backend", values.Backend, "Backend for describe, scale and delete (api|kubectl)")
	flags.StringVar(&values.KubectlPath, "kubectl-path", values.KubectlPath, "Path to the kubectl binary used by the kubectl backend")

	// Templates
	flags.StringVar(&values.Templates.Nginx, "nginx-template", values.Templates.Nginx, "Deployment manifest replacing the embedded nginx template")
	flags.StringVar(&values.Templates.Redis, "redis-template", values.Templates.Redis, "Deployment manifest replacing the embedded redis template")
	flags.StringVar(&values.Templates.Node, "node-template", values.Templates.Node, "DaemonSet manifest replacing the embedded node template")

	// Exec
	flags.DurationVar(&values.ExecPollInterval, "exec-poll-interval", values.ExecPollInterval, "Wait before each command sent to an exec session")
	flags.DurationVar(&values.ExecTimeout, "exec-timeout", values.ExecTimeout, "Maximum duration of an exec session")

	// Safety
	flags.BoolVar(&values.ReadOnly, "read-only", values.ReadOnly, "Reject create, scale, delete, deploy and exec operations")
	flags.BoolVar(&values.DryRun, "dry-run", values.DryRun, "Send mutating requests with server-side dry run")

	// Performance
	flags.Float32Var(&values.QPS, "qps", values.QPS, "Kubernetes API queries per second")
	flags.IntVar(&values.Burst, "burst", values.Burst, "Kubernetes API burst limit")
	flags.DurationVar(&values.RequestTimeout, "request-timeout", values.RequestTimeout, "Timeout for a single Kubernetes API request")

	// Console
	flags.BoolVar(&values.Debug, "debug", values.Debug, "Enable debug logging")
	flags.BoolVar(&values.Accessible, "accessible", values.Accessible, "Use plain line based prompts instead of the interactive menu")
	flags.StringVar(&values.LogFormat, "log-format", values.LogFormat, "Log format (text|json|logfmt)")
	flags.StringVar(&values.MetricsAddr, "metrics-addr", values.MetricsAddr, "Serve Prometheus metrics on this address when instrumentation is enabled")
}

// flagOverrides copies one flag's value from the parsed flag values into the
// resolved configuration.
var flagOverrides = map[string]func(dst *config.Config, src config.Config){
	"kubeconfig":         func(d *config.Config, s config.Config) { d.Kubeconfig = s.Kubeconfig },
	"context":            func(d *config.Config, s config.Config) { d.Context = s.Context },
	"namespace":          func(d *config.Config, s config.Config) { d.Namespace = s.Namespace },
	"all-namespaces":     func(d *config.Config, s config.Config) { d.AllNamespaces = s.AllNamespaces },
	"backend":            func(d *config.Config, s config.Config) { d.Backend = s.Backend },
	"kubectl-path":       func(d *config.Config, s config.Config) { d.KubectlPath = s.KubectlPath },
	"nginx-template":     func(d *config.Config, s config.Config) { d.Templates.Nginx = s.Templates.Nginx },
	"redis-template":     func(d *config.Config, s config.Config) { d.Templates.Redis = s.Templates.Redis },
	"node-template":      func(d *config.Config, s config.Config) { d.Templates.Node = s.Templates.Node },
	"exec-poll-interval": func(d *config.Config, s config.Config) { d.ExecPollInterval = s.ExecPollInterval },
	"exec-timeout":       func(d *config.Config, s config.Config) { d.ExecTimeout = s.ExecTimeout },
	"read-only":          func(d *config.Config, s config.Config) { d.ReadOnly = s.ReadOnly },
	"dry-run":            func(d *config.Config, s config.Config) { d.DryRun = s.DryRun },
	"qps":                func(d *config.Config, s config.Config) { d.QPS = s.QPS },
	"burst":              func(d *config.Config, s config.Config) { d.Burst = s.Burst },
	"request-timeout":    func(d *config.Config, s config.Config) { d.RequestTimeout = s.RequestTimeout },
	"debug":              func(d *config.Config, s config.Config) { d.Debug = s.Debug },
	"accessible":         func(d *config.Config, s config.Config) { d.Accessible = s.Accessible },
	"log-format":         func(d *config.Config, s config.Config) { d.LogFormat = s.LogFormat },
	"metrics-addr":       func(d *config.Config, s config.Config) { d.MetricsAddr = s.MetricsAddr },
}

// resolveConfig loads the file and environment layers, then applies every
// flag the user set explicitly.
func resolveConfig(flags *pflag.FlagSet, configFile string, flagValues config.Config) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}

	flags.Visit(func(f *pflag.Flag) {
		if override, ok := flagOverrides[f.Name]; ok {
			override(&cfg, flagValues)
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
