package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Rakesh-Biswal/reminder-service/internal/config"
	"github.com/Rakesh-Biswal/reminder-service/internal/service/server"
	"github.com/Rakesh-Biswal/reminder-service/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for running the reminder server.
	rootCmd = &cobra.Command{
		Use:   "reminder-server [listen-address]",
		Short: "Run the reminder HTTP server and the expiry sweep.",
		Long: `Starts the HTTP reminder server that manages user reminders and
drives the periodic expiry reconciliation sweep.

The server listens on the address from the configuration file.
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:5000).
Expired reminders trigger an SMS notification and raise the shared alarm flag.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the reminder-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
