// Package metrics holds the Prometheus diagnostics of the actuator:
// samples seen, commands written, write failures, malformed lines and
// signals received. Serve exposes them on /metrics when enabled.
package metrics
