package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/disk-led/internal/logger"
)

// Config holds the paths and command strings used by both binaries.
type Config struct {
	// DiskstatsFile is the statistics source read by the sampler.
	DiskstatsFile string `yaml:"diskstats_file" envconfig:"DISKSTATS_FILE"`
	// LEDFile is the control file the actuator writes commands to.
	LEDFile string `yaml:"led_file" envconfig:"LED_FILE"`
	// LEDOnCommand is written to LEDFile to assert the indicator.
	LEDOnCommand string `yaml:"led_on_command" envconfig:"LED_ON_COMMAND"`
	// LEDOffCommand is written to LEDFile to deassert the indicator.
	LEDOffCommand string `yaml:"led_off_command" envconfig:"LED_OFF_COMMAND"`
	// LogLevel is one of debug, info, warn, error, fatal.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	// MetricsAddress enables the Prometheus endpoint when not empty.
	MetricsAddress string `yaml:"metrics_address,omitempty" envconfig:"METRICS_ADDRESS"`
}

const (
	// DefaultConfigFilename is the settings file looked up when no path is given.
	DefaultConfigFilename = "disk-led-settings.yaml"

	// DefaultDiskstatsFile is the kernel block device statistics file.
	DefaultDiskstatsFile = "/proc/diskstats"

	// DefaultLEDFile is the ThinkPad ACPI LED control file.
	DefaultLEDFile = "/proc/acpi/ibm/led"

	// DefaultLEDOnCommand turns LED #0 on through thinkpad_acpi.
	DefaultLEDOnCommand = "0 on"

	// DefaultLEDOffCommand turns LED #0 off through thinkpad_acpi.
	DefaultLEDOffCommand = "0 off"

	// DefaultLogLevel is used when the settings do not name one.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the permission mode for saved settings.
	DefaultFilePermissions = 0o600

	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "DISKLED"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrSameLEDCommands is returned when on and off commands cannot be told apart.
	ErrSameLEDCommands = errors.New("led on and off commands must differ")
	// ErrUnknownLogLevel is returned for log levels zap does not know.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// Default returns settings for a ThinkPad reading /proc/diskstats.
func Default() *Config {
	return &Config{
		DiskstatsFile: DefaultDiskstatsFile,
		LEDFile:       DefaultLEDFile,
		LEDOnCommand:  DefaultLEDOnCommand,
		LEDOffCommand: DefaultLEDOffCommand,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads settings from path, applies environment overrides and validates the result.
// An empty path means DefaultConfigFilename, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills empty fields with defaults and rejects inconsistent settings.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	if settings.DiskstatsFile == "" {
		settings.DiskstatsFile = defaults.DiskstatsFile
	}

	if settings.LEDFile == "" {
		settings.LEDFile = defaults.LEDFile
	}

	if settings.LEDOnCommand == "" {
		settings.LEDOnCommand = defaults.LEDOnCommand
	}

	if settings.LEDOffCommand == "" {
		settings.LEDOffCommand = defaults.LEDOffCommand
	}

	if settings.LogLevel == "" {
		settings.LogLevel = defaults.LogLevel
	}

	if settings.LEDOnCommand == settings.LEDOffCommand {
		return ErrSameLEDCommands
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, settings.LogLevel)
	}

	if settings.MetricsAddress == "" {
		return nil
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
		return fmt.Errorf("invalid metrics address: %w", err)
	}

	return nil
}
