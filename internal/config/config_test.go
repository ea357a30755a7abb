package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty settings get defaults.
	settings := new(Config)
	require.NoError(t, Validate(settings))
	require.Equal(t, Default(), settings)

	// Identical commands.
	settings = &Config{
		LEDOnCommand:  "1",
		LEDOffCommand: "1",
	}
	require.ErrorIs(t, Validate(settings), ErrSameLEDCommands)

	// Unknown level.
	settings = &Config{LogLevel: "chatty"}
	require.ErrorIs(t, Validate(settings), ErrUnknownLogLevel)

	// Bad metrics address.
	settings = &Config{MetricsAddress: "bad:address"}
	require.Error(t, Validate(settings))

	// Good metrics address.
	settings = &Config{MetricsAddress: "127.0.0.1:0"}
	require.NoError(t, Validate(settings))

	require.Error(t, Validate(nil))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := &Config{
		DiskstatsFile: "/tmp/diskstats",
		LEDFile:       "/sys/class/leds/input3::capslock/brightness",
		LEDOnCommand:  "1",
		LEDOffCommand: "0",
		LogLevel:      "debug",
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_ExplicitMissingFile ensures a named settings file must exist.
func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoad_EnvironmentOverride verifies DISKLED_* variables win over the file.
// Not parallel: t.Setenv forbids it.
func TestLoad_EnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, Save(path, &Config{LEDFile: "/from/file"}))

	t.Setenv("DISKLED_LED_FILE", "/from/env")
	t.Setenv("DISKLED_LED_ON_COMMAND", "1")
	t.Setenv("DISKLED_LED_OFF_COMMAND", "0")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/from/env", loaded.LEDFile)
	require.Equal(t, "1", loaded.LEDOnCommand)
	require.Equal(t, "0", loaded.LEDOffCommand)
	require.Equal(t, DefaultDiskstatsFile, loaded.DiskstatsFile)
}
