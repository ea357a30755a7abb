package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/disk-led/internal/service/sampler"
	"github.com/oshokin/disk-led/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// source overrides the diskstats path.
	source string

	// rootCmd represents the base command for sampling disk statistics.
	rootCmd = &cobra.Command{
		Use:   "diskled-sampler",
		Short: "Print block I/Os in progress every 5 ms.",
		Long: `Reads the first line of the disk statistics file (/proc/diskstats by default)
every 5 ms and prints its "I/Os currently in progress" field as one decimal line.

Pipe the output into diskled-actuator:

  diskled-sampler | diskled-actuator 1

Runs until the statistics file can no longer be read, then exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			return sampler.Run(context.Background(), &sampler.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
				Source:     source,
				Output:     os.Stdout,
			})
		},
	}
)

// Execute runs the diskled-sampler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default \"disk-led-settings.yaml\" if present)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default from configuration)")
	rootCmd.Flags().StringVarP(&source, "source", "s", "", "statistics file to sample (default from configuration)")
}
