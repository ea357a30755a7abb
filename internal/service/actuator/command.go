package actuator

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/oshokin/disk-led/internal/api/stream"
	"github.com/oshokin/disk-led/internal/config"
	"github.com/oshokin/disk-led/internal/logger"
	"github.com/oshokin/disk-led/internal/metrics"
	"github.com/oshokin/disk-led/internal/repository/led"
	"github.com/oshokin/disk-led/internal/service/common"
)

// Options controls the actuator process.
type Options struct {
	// ConfigPath specifies the settings YAML file; empty means the optional default.
	ConfigPath string
	// LEDFile overrides the control file from the settings.
	LEDFile string
	// MetricsAddress overrides the metrics listen address from the settings.
	MetricsAddress string
	// LogLevel overrides the log level from the settings.
	LogLevel string
	// Threshold is the in-progress count at which the LED turns on.
	Threshold uint64
	// Verbose enables per-sample echo at start.
	Verbose bool
	// AllowMultiple skips the check for another running actuator.
	AllowMultiple bool
	// Input is the sample stream. Defaults to os.Stdin.
	Input io.Reader
	// Signals replaces OS signal delivery when set.
	Signals <-chan os.Signal
	// Exit replaces os.Exit for signal-driven termination when set.
	Exit func(code int)
}

// ControlSignals are the signals the actuator handles itself.
func ControlSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
		syscall.SIGHUP,
		syscall.SIGUSR1,
	}
}

// Run opens the LED, starts signal handling and consumes samples until the input ends.
//
//nolint:funlen // Startup sequence reads best in one place.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "diskled-actuator")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.LEDFile != "" {
		cfg.LEDFile = opts.LEDFile
	}

	if opts.MetricsAddress != "" {
		cfg.MetricsAddress = opts.MetricsAddress
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownLogLevel, cfg.LogLevel)
	}

	logger.SetLevel(level)

	// Queue control signals before anything else; they are served once the LED is open.
	signals := opts.Signals
	if signals == nil {
		ch := make(chan os.Signal, len(ControlSignals()))
		signal.Notify(ch, ControlSignals()...)

		defer signal.Stop(ch)

		signals = ch
	}

	logger.InfoKV(ctx, "Initializing",
		"pid", os.Getpid(),
		"threshold", opts.Threshold,
		"verbose", opts.Verbose,
		"led_file", cfg.LEDFile,
	)

	if !opts.AllowMultiple {
		if err = common.DetectPeer(); err != nil {
			return fmt.Errorf("single instance check: %w", err)
		}
	}

	indicator, err := led.Open(cfg.LEDFile, led.Commands{
		On:  cfg.LEDOnCommand,
		Off: cfg.LEDOffCommand,
	})
	if err != nil {
		return err
	}

	m := metrics.New()

	if cfg.MetricsAddress != "" {
		if _, err = m.Serve(ctx, cfg.MetricsAddress); err != nil {
			_ = indicator.Shutdown()

			return fmt.Errorf("serve metrics: %w", err)
		}
	}

	controller := NewController(indicator, opts.Threshold, opts.Verbose, m)
	if opts.Exit != nil {
		controller.exit = opts.Exit
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	go controller.Watch(watchCtx, signals)

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}

	logger.Info(ctx, "Init done, running")

	return controller.Loop(ctx, stream.NewDecoder(input))
}
