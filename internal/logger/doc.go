// Package logger wraps zap for both disk-led binaries:
//   - a global sugared logger writing a console encoding to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and switching,
//   - leveled shortcuts (Infof, WarnKV, ...) that pull the logger from a context.
//
// Stdout is never used: the sampler's stdout carries the sample stream.
package logger
