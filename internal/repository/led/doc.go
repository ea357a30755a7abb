// Package led drives the indicator through its control file.
//
// FileIndicator serializes every command with a mutex and offers an
// idempotent Shutdown that forces the LED off and releases the file, so the
// main loop and the signal goroutine can both call into it.
package led
