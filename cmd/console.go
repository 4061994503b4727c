package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/giantswarm/kube-console/internal/config"
	"github.com/giantswarm/kube-console/internal/console"
	"github.com/giantswarm/kube-console/internal/instrumentation"
	"github.com/giantswarm/kube-console/internal/k8s"
	"github.com/giantswarm/kube-console/internal/kubectl"
	"github.com/giantswarm/kube-console/internal/logging"
	"github.com/giantswarm/kube-console/internal/templates"
)

// instrumentationShutdownTimeout bounds the final metrics and trace flush.
const instrumentationShutdownTimeout = 5 * time.Second

// newConsoleCmd creates the Cobra command for starting the interactive console.
func newConsoleCmd() *cobra.Command {
	var (
		configFile string
		flagValues = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start the interactive Kubernetes console",
		Long: `Start the interactive Kubernetes console.

The console talks to the cluster selected by the kubeconfig (--kubeconfig,
then $KUBECONFIG, then ~/.kube/config) and works in a single namespace.
Describe, scale and delete run through the Kubernetes API by default, or
through the kubectl binary with --backend kubectl.

Configuration is read from built-in defaults, the optional --config YAML file,
KUBE_CONSOLE_* environment variables and finally the flags given here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), configFile, flagValues)
			if err != nil {
				return err
			}
			return runConsole(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	bindConsoleFlags(cmd.Flags(), &flagValues)

	return cmd
}

func runConsole(ctx context.Context, cfg config.Config, in io.Reader, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	silenceKlog()

	logger, err := logging.NewLogger(errOut, logging.Options{
		Level:  logging.LevelFromDebug(cfg.Debug),
		Format: cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	provider, err := instrumentation.NewProvider(ctx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), instrumentationShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	if provider.Enabled() {
		logger.Debug("OpenTelemetry instrumentation enabled",
			slog.String("metrics", instrumentationConfig.MetricsExporter),
			slog.String("tracing", instrumentationConfig.TracingExporter))
	}
	if provider.PrometheusEnabled() && cfg.MetricsAddr != "" {
		addr, err := instrumentation.ServeMetrics(ctx, cfg.MetricsAddr, rootCmd.Version, logger)
		if err != nil {
			return err
		}
		logger.Info("serving metrics", logging.Host(addr))
	}

	client, err := k8s.NewClient(&k8s.ClientConfig{
		KubeconfigPath: cfg.Kubeconfig,
		Context:        cfg.Context,
		Namespace:      cfg.Namespace,
		ReadOnly:       cfg.ReadOnly,
		DryRun:         cfg.DryRun,
		QPSLimit:       cfg.QPS,
		BurstLimit:     cfg.Burst,
		Timeout:        cfg.RequestTimeout,
		DebugMode:      cfg.Debug,
		Logger:         logger,
		Metrics:        provider.Metrics(),
	})
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	var operator console.Operator = client
	if cfg.Backend == config.BackendKubectl {
		operator = kubectl.NewRunner(kubectl.Config{
			Path:       cfg.KubectlPath,
			Kubeconfig: cfg.Kubeconfig,
			Context:    cfg.Context,
			Namespace:  client.Namespace(),
			Logger:     logger,
		})
	}
	logger.Debug("console starting",
		logging.Namespace(client.Namespace()),
		logging.Backend(cfg.Backend))

	accessible := cfg.Accessible || !isTerminal(in)
	if !accessible && isTerminal(out) {
		clearScreen(out)
	}

	c := console.New(console.Options{
		AllNamespaces:    cfg.AllNamespaces,
		ExecPollInterval: cfg.ExecPollInterval,
		ExecTimeout:      cfg.ExecTimeout,
		Out:              out,
		Logger:           logger,
		Metrics:          provider.Metrics(),
	}, client, operator, templates.NewStore(cfg.Templates), console.NewHuhPrompter(in, out, accessible))

	if err := c.Run(ctx); err != nil {
		if errors.Is(err, console.ErrInterrupted) || errors.Is(err, context.Canceled) {
			logger.Info("console interrupted")
			return nil
		}
		return err
	}
	return nil
}

// silenceKlog keeps client-go's klog output from corrupting the menu.
func silenceKlog() {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	_ = fs.Set("logtostderr", "false")
	_ = fs.Set("alsologtostderr", "false")
	klog.SetOutput(io.Discard)
	klog.LogToStderr(false)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func clearScreen(out io.Writer) {
	_, _ = io.WriteString(out, "\033[H\033[2J")
}
