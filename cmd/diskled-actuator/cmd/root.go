package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oshokin/disk-led/internal/service/actuator"
	"github.com/oshokin/disk-led/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// ledFile overrides the LED control file.
	ledFile string
	// metricsAddress enables the Prometheus endpoint.
	metricsAddress string
	// allowMultiple skips the single instance check.
	allowMultiple bool

	// threshold and verbose are parsed from the positional arguments.
	threshold uint64
	verbose   bool

	// rootCmd represents the base command for driving the LED.
	rootCmd = &cobra.Command{
		Use:   "diskled-actuator <threshold> [verbose]",
		Short: "Drive the disk activity LED from a stream of I/O counts.",
		Long: `Reads one unsigned integer per line from stdin, as printed by diskled-sampler,
and drives the LED through its control file (/proc/acpi/ibm/led by default).

threshold  number of I/Os in progress at which the LED is turned on
verbose    1 to echo every sample to stderr (default 0)

A count of 0 turns the LED off, a count at or above threshold turns it on,
anything in between leaves it as it is.

SIGINT, SIGQUIT, SIGTERM and SIGHUP turn the LED off and exit with status 2.
SIGUSR1 toggles verbose mode.`,
		Args: parseArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			return actuator.Run(context.Background(), &actuator.Options{
				ConfigPath:     configPath,
				LogLevel:       logLevel,
				LEDFile:        ledFile,
				MetricsAddress: metricsAddress,
				Threshold:      threshold,
				Verbose:        verbose,
				AllowMultiple:  allowMultiple,
				Input:          os.Stdin,
			})
		},
	}
)

// parseArgs validates and stores the positional arguments.
func parseArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
		return err
	}

	verbose = false

	value, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("threshold must be a non-negative integer, got %q", args[0])
	}

	threshold = value

	if len(args) == 1 {
		return nil
	}

	verbose, err = strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("verbose must be 0 or 1, got %q", args[1])
	}

	return nil
}

// Execute runs the diskled-actuator CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVar(&ledFile, "led-file", "", "LED control file (default from configuration)")
	rootCmd.Flags().StringVar(&metricsAddress, "metrics-address", "", "serve Prometheus metrics on this address")

	// Hidden escape hatch for running a second actuator on purpose.
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "skip the single instance check")

	err := rootCmd.Flags().MarkHidden("allow-multiple")
	if err != nil {
		panic(err)
	}
}
