package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

// TestContextLogger checks that named loggers travel through the context and carry fields.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), NewWithSink(zapcore.AddSync(&buf), zapcore.DebugLevel))
	ctx = WithName(ctx, "diskled-actuator")
	ctx = WithKV(ctx, "pid", 42)

	InfoKV(ctx, "Initializing", "threshold", 5)

	out := buf.String()
	require.Contains(t, out, "diskled-actuator")
	require.Contains(t, out, "Initializing")
	require.Contains(t, out, `"pid": 42`)
	require.Contains(t, out, `"threshold": 5`)
}

// TestFromContextFallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithLevel lets a derived logger print below the configured level.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := NewWithSink(zapcore.AddSync(&buf), zapcore.ErrorLevel)

	base.Info("hidden")
	base.WithOptions(WithLevel(zapcore.InfoLevel)).Info("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
