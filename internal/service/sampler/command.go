package sampler

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/disk-led/internal/api/stream"
	"github.com/oshokin/disk-led/internal/config"
	"github.com/oshokin/disk-led/internal/logger"
	"github.com/oshokin/disk-led/internal/repository/diskstats"
	"github.com/oshokin/disk-led/internal/timing"
)

// Options controls the sampler process.
type Options struct {
	// ConfigPath specifies the settings YAML file; empty means the optional default.
	ConfigPath string
	// Source overrides the diskstats path from the settings.
	Source string
	// LogLevel overrides the log level from the settings.
	LogLevel string
	// Output receives the sample lines. Defaults to os.Stdout.
	Output io.Writer
	// Interval is the pause between ticks. Zero means timing.Interval.
	Interval time.Duration
}

// sleeper is the pause used between ticks.
type sleeper interface {
	Sleep(d time.Duration) error
}

// Sampler emits one sample per tick.
type Sampler struct {
	// source yields the current diskstats record.
	source diskstats.Source
	// encoder writes sample lines.
	encoder *stream.Encoder
	// sleeper paces the loop.
	sleeper sleeper
	// interval is the pause between ticks.
	interval time.Duration
}

// New creates a Sampler reading source and writing to output.
func New(source diskstats.Source, output io.Writer, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = timing.Interval
	}

	return &Sampler{
		source:   source,
		encoder:  stream.NewEncoder(output),
		sleeper:  timing.NewSleeper(),
		interval: interval,
	}
}

// Run loads settings and samples until the source or the output fails.
// It never returns nil: the loop only ends on a fatal error.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "diskled-sampler")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownLogLevel, cfg.LogLevel)
	}

	logger.SetLevel(level)

	path := cfg.DiskstatsFile
	if opts.Source != "" {
		path = opts.Source
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	s := New(diskstats.NewFileSource(path), output, opts.Interval)

	logger.InfoKV(ctx, "Sampling disk statistics", "source", path, "interval", s.interval.String(), "pid", os.Getpid())

	return s.Loop(ctx)
}

// Loop ticks and sleeps until a tick fails.
func (s *Sampler) Loop(ctx context.Context) error {
	for {
		if err := s.Tick(); err != nil {
			logger.ErrorKV(ctx, "Sampling stopped", "error", err)

			return err
		}

		if err := s.sleeper.Sleep(s.interval); err != nil {
			return fmt.Errorf("pause between samples: %w", err)
		}
	}
}

// Tick reads one record and writes its in-progress count as one line.
func (s *Sampler) Tick() error {
	record, err := s.source.Read()
	if err != nil {
		return fmt.Errorf("read disk statistics: %w", err)
	}

	if err = s.encoder.Encode(record.IOsInProgress); err != nil {
		return fmt.Errorf("emit sample: %w", err)
	}

	return nil
}
