// Package actuator implements diskled-actuator.
//
// The Controller reads one sample per line, applies the threshold rule from
// the indicator package and writes the resulting command to the LED. Signals
// are served by a separate goroutine: termination signals force the LED off
// and exit the process with status 2, SIGUSR1 toggles sample echoing.
package actuator
