package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// coreWithLevel overrides the level of the core it wraps.
type coreWithLevel struct {
	zapcore.Core

	// level is the minimum level this core accepts, regardless of the wrapped core.
	level zapcore.Level
}

// Enabled reports whether l passes the override level.
func (c *coreWithLevel) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check adds this core to ce when the entry passes the override level.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *coreWithLevel) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// With keeps the override level on the derived core.
//
//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *coreWithLevel) With(fields []zapcore.Field) zapcore.Core {
	return &coreWithLevel{
		c.Core.With(fields),
		c.level,
	}
}

// WithLevel makes a derived logger use lvl instead of the shared level.
// The actuator uses it so verbose sample echo is printed whatever log_level says.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &coreWithLevel{core, lvl}
	})
}
