// Package stream implements the sample stream between the two binaries.
//
// The wire format is one ASCII decimal unsigned integer per line, terminated
// by '\n'. There is no other framing: each line is one sample.
package stream
