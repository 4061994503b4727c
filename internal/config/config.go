// Package config holds the kube-console runtime configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// KUBE_CONSOLE_* environment variables. Command-line flags are applied on top
// by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/giantswarm/kube-console/internal/k8s"
	"github.com/giantswarm/kube-console/internal/kubectl"
	"github.com/giantswarm/kube-console/internal/templates"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KUBE_CONSOLE"

// Backends serving describe, scale and delete.
const (
	BackendAPI     = "api"
	BackendKubectl = "kubectl"
)

// Config holds all kube-console settings.
type Config struct {
	// Cluster access. An empty Namespace falls back to the kubeconfig
	// context's namespace, then to "default".
	Kubeconfig    string `yaml:"kubeconfig"`
	Context       string `yaml:"context"`
	Namespace     string `yaml:"namespace"`
	AllNamespaces bool   `yaml:"allNamespaces" split_words:"true"`

	// Backend selects how describe, scale and delete are executed.
	Backend     string `yaml:"backend"`
	KubectlPath string `yaml:"kubectlPath" split_words:"true"`

	// Templates overrides the embedded workload manifests.
	Templates templates.Paths `yaml:"templates"`

	// Exec settings
	ExecPollInterval time.Duration `yaml:"execPollInterval" split_words:"true"`
	ExecTimeout      time.Duration `yaml:"execTimeout" split_words:"true"`

	// Safety settings
	ReadOnly bool `yaml:"readOnly" split_words:"true"`
	DryRun   bool `yaml:"dryRun" split_words:"true"`

	// Performance settings
	QPS            float32       `yaml:"qps"`
	Burst          int           `yaml:"burst"`
	RequestTimeout time.Duration `yaml:"requestTimeout" split_words:"true"`

	// Console settings
	Debug      bool   `yaml:"debug"`
	Accessible bool   `yaml:"accessible"`
	LogFormat  string `yaml:"logFormat" split_words:"true"`

	// MetricsAddr serves Prometheus metrics when set and instrumentation is
	// enabled.
	MetricsAddr string `yaml:"metricsAddr" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend:          BackendAPI,
		KubectlPath:      kubectl.DefaultPath,
		ExecPollInterval: k8s.DefaultExecPollInterval,
		ExecTimeout:      k8s.DefaultExecTimeout,
		QPS:              k8s.DefaultQPSLimit,
		Burst:            k8s.DefaultBurstLimit,
		RequestTimeout:   k8s.DefaultTimeout * time.Second,
		LogFormat:        "text",
	}
}

// Load layers the YAML file at path (if non-empty) and the environment on top
// of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("loading config from environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendAPI, BackendKubectl:
	default:
		errs = append(errs, fmt.Errorf("invalid backend %q: must be %q or %q", c.Backend, BackendAPI, BackendKubectl))
	}

	if c.Backend == BackendKubectl && c.KubectlPath == "" {
		errs = append(errs, errors.New("kubectl path is required for the kubectl backend"))
	}
	if c.ExecPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("exec poll interval must be positive, got %s", c.ExecPollInterval))
	}
	if c.ExecTimeout <= 0 {
		errs = append(errs, fmt.Errorf("exec timeout must be positive, got %s", c.ExecTimeout))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.QPS < 0 {
		errs = append(errs, fmt.Errorf("qps must not be negative, got %v", c.QPS))
	}
	if c.Burst < 0 {
		errs = append(errs, fmt.Errorf("burst must not be negative, got %d", c.Burst))
	}

	return errors.Join(errs...)
}
