package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "diskled"

// Metrics is the set of actuator collectors bound to one registry.
type Metrics struct {
	// Registry owns every collector below.
	Registry *prometheus.Registry

	// Samples counts lines decoded from the input stream.
	Samples prometheus.Counter
	// MalformedLines counts lines skipped because they did not parse.
	MalformedLines prometheus.Counter
	// LastSample is the most recent in-progress count.
	LastSample prometheus.Gauge
	// Commands counts control-file writes by commanded state.
	Commands *prometheus.CounterVec
	// WriteFailures counts control-file writes that returned an error.
	WriteFailures prometheus.Counter
	// Signals counts delivered control signals by name.
	Signals *prometheus.CounterVec
}

// New registers the actuator collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		Samples: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Samples read from the input stream.",
		}),
		MalformedLines: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_lines_total",
			Help:      "Input lines that were not unsigned integers.",
		}),
		LastSample: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ios_in_progress",
			Help:      "Most recent number of I/Os in progress.",
		}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "led_commands_total",
			Help:      "Commands written to the LED control file.",
		}, []string{"state"}),
		WriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "led_write_failures_total",
			Help:      "LED control file writes that failed.",
		}),
		Signals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Control signals received.",
		}, []string{"signal"}),
	}
}
