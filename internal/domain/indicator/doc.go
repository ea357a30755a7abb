// Package indicator contains the core domain rule for the disk activity LED.
//
// It defines State (the commanded LED state) and Decide, the pure threshold
// policy mapping an in-progress I/O count to a target state.
package indicator
