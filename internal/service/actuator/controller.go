package actuator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/disk-led/internal/api/stream"
	domain "github.com/oshokin/disk-led/internal/domain/indicator"
	"github.com/oshokin/disk-led/internal/logger"
	"github.com/oshokin/disk-led/internal/metrics"
	"github.com/oshokin/disk-led/internal/repository/led"
	"github.com/oshokin/disk-led/internal/timing"
)

// ExitSignaled is the process status after a termination signal.
const ExitSignaled = 2

var (
	// ErrInputClosed is returned when the sample producer goes away.
	ErrInputClosed = errors.New("input stream closed")
	// ErrTerminated is returned by Loop when a termination signal stopped it.
	ErrTerminated = errors.New("terminated by signal")
)

// sleeper is the pause used between samples.
type sleeper interface {
	Sleep(d time.Duration) error
}

// Controller drives the LED from a stream of samples.
type Controller struct {
	// led is the control file backend.
	led led.Indicator
	// threshold is the sample count at which the LED turns on.
	threshold uint64
	// metrics collects diagnostics.
	metrics *metrics.Metrics
	// sleeper paces the loop.
	sleeper sleeper
	// interval is the pause after each sample.
	interval time.Duration
	// exit terminates the process; replaced in tests.
	exit func(code int)

	// running is cleared by termination signals.
	running atomic.Bool
	// verbose enables per-sample echo; toggled by SIGUSR1.
	verbose atomic.Bool
	// stopped is set by the first caller of shutdown.
	stopped atomic.Bool
}

// NewController creates a Controller; threshold is fixed for its lifetime.
func NewController(indicator led.Indicator, threshold uint64, verbose bool, m *metrics.Metrics) *Controller {
	if m == nil {
		m = metrics.New()
	}

	c := &Controller{
		led:       indicator,
		threshold: threshold,
		metrics:   m,
		sleeper:   timing.NewSleeper(),
		interval:  timing.Interval,
		exit:      os.Exit,
	}

	c.running.Store(true)
	c.verbose.Store(verbose)

	return c
}

// Verbose reports whether samples are echoed.
func (c *Controller) Verbose() bool {
	return c.verbose.Load()
}

// Running reports whether no termination signal has been handled yet.
func (c *Controller) Running() bool {
	return c.running.Load()
}

// Apply runs the threshold rule for one sample and writes the command, if any.
// Write failures are logged and counted but do not stop the caller.
func (c *Controller) Apply(ctx context.Context, sample uint64) {
	c.metrics.Samples.Inc()
	c.metrics.LastSample.Set(float64(sample))

	target, ok := domain.Decide(sample, c.threshold)
	if !ok {
		return
	}

	if err := c.led.Set(target); err != nil {
		if errors.Is(err, led.ErrClosed) {
			return
		}

		c.metrics.WriteFailures.Inc()
		logger.WarnKV(ctx, "LED write failed", "state", target.String(), "error", err)

		return
	}

	c.metrics.Commands.WithLabelValues(target.String()).Inc()
}

// Loop consumes samples until the input ends or a termination signal is handled.
// On end of input the LED is forced off and released before returning ErrInputClosed.
func (c *Controller) Loop(ctx context.Context, decoder *stream.Decoder) error {
	echo := logger.FromContext(ctx).WithOptions(logger.WithLevel(zapcore.InfoLevel))

	for c.running.Load() {
		sample, err := decoder.Decode()

		switch {
		case err == nil:
		case errors.Is(err, stream.ErrMalformedLine):
			c.metrics.MalformedLines.Inc()
			logger.WarnKV(ctx, "Skipping sample", "error", err)

			continue
		case errors.Is(err, io.EOF):
			logger.Error(ctx, "No data: sample producer went away")
			c.shutdown(ctx)

			return ErrInputClosed
		default:
			c.shutdown(ctx)

			return fmt.Errorf("read samples: %w", err)
		}

		if !c.running.Load() {
			break
		}

		c.Apply(ctx, sample)

		if c.verbose.Load() {
			echo.Infow("Sample", "ios_in_progress", sample, "led", c.led.State().String())
		}

		if err = c.sleeper.Sleep(c.interval); err != nil {
			c.shutdown(ctx)

			return fmt.Errorf("pause between samples: %w", err)
		}
	}

	return ErrTerminated
}

// HandleSignal reacts to one delivered signal.
func (c *Controller) HandleSignal(ctx context.Context, sig os.Signal) {
	c.metrics.Signals.WithLabelValues(signalName(sig)).Inc()

	switch sig {
	case syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP:
		c.running.Store(false)
		logger.WarnKV(ctx, "Aborting on signal", "signal", signalName(sig), "pid", os.Getpid())
		c.shutdown(ctx)
		logger.Sync()
		c.exit(ExitSignaled)
	case syscall.SIGUSR1:
		verbose := c.toggleVerbose()
		logger.InfoKV(ctx, "Toggled verbose mode", "signal", signalName(sig), "verbose", verbose)
	}
}

// Watch serves signals from ch until it is closed or ctx is done.
func (c *Controller) Watch(ctx context.Context, ch <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-ch:
			if !ok {
				return
			}

			c.HandleSignal(ctx, sig)
		}
	}
}

// toggleVerbose flips the verbose flag and returns the new value.
func (c *Controller) toggleVerbose() bool {
	for {
		current := c.verbose.Load()
		if c.verbose.CompareAndSwap(current, !current) {
			return !current
		}
	}
}

// shutdown forces the LED off and releases it. Every caller blocks until the
// off command has been written, whichever goroutine wrote it.
func (c *Controller) shutdown(ctx context.Context) {
	err := c.led.Shutdown()

	if !c.stopped.CompareAndSwap(false, true) {
		return
	}

	if err != nil {
		c.metrics.WriteFailures.Inc()
		logger.ErrorKV(ctx, "LED shutdown incomplete", "error", err)

		return
	}

	c.metrics.Commands.WithLabelValues(domain.Off.String()).Inc()
	logger.Info(ctx, "LED turned off and released")

	if counters, err := c.metrics.Snapshot(); err == nil {
		logger.DebugKV(ctx, "Final counters", "counters", counters)
	}
}

// signalName returns the conventional short name of sig.
func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGQUIT:
		return "SIGQUIT"
	case syscall.SIGTERM:
		return "SIGTERM"
	case syscall.SIGHUP:
		return "SIGHUP"
	case syscall.SIGUSR1:
		return "SIGUSR1"
	default:
		return sig.String()
	}
}
