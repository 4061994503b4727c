package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the kube-console application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kube-console",
	Short: "Interactive console for Kubernetes workloads",
	Long: `kube-console is an interactive, menu driven console for a single
Kubernetes cluster. It lists pods and deployments, describes pods, creates
nginx or redis deployments from templates, scales deployments, runs commands
in pods, deploys a DaemonSet to every node and deletes pods.

When run without subcommands, it starts the console (equivalent to 'kube-console console').`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kube-console version %s\n" .Version}}`)

	rootCmd.SetArgs(withDefaultCommand(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newConsoleCmd())
}

// withDefaultCommand routes invocations without a subcommand, including ones
// that only carry console flags, to the console command.
func withDefaultCommand(args []string) []string {
	cmd, _, err := rootCmd.Find(args)
	if err != nil || cmd != rootCmd {
		return args
	}
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "-v", "--version":
			return args
		}
	}
	return append([]string{"console"}, args...)
}
